package query

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// ListMovementsQuery lists movement log records with optional filters
type ListMovementsQuery struct {
	ResourceType domain.ResourceType
	ResourceID   uint
	Action       domain.MovementAction
	Page         int
	Limit        int
}

// MovementPage is one page of movements
type MovementPage struct {
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Items []domain.Movement `json:"items"`
}

// ListMovementsHandler handles the list movements query
type ListMovementsHandler struct {
	repo domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(ctx context.Context, q ListMovementsQuery) (*MovementPage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	movements, total, err := h.repo.FindAll(domain.MovementFilter{
		ResourceType: q.ResourceType,
		ResourceID:   q.ResourceID,
		Action:       q.Action,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return &MovementPage{Total: total, Page: page, Limit: limit, Items: movements}, nil
}
