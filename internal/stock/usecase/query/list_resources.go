package query

import (
	"context"
	"fmt"

	"github.com/fleetops/depot-backend/internal/stock/domain"
)

// ListResourcesQuery lists resources of one type, optionally scoped to a
// depot, with pagination
type ListResourcesQuery struct {
	ResourceType domain.ResourceType
	DepotID      *uint
	Page         int
	Limit        int
}

// ResourcePage is one page of resources with derived availability
type ResourcePage struct {
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Items []ResourceView `json:"items"`
}

// ListResourcesHandler handles the list resources query
type ListResourcesHandler struct {
	repo domain.ResourceRepository
}

// NewListResourcesHandler creates a new list resources handler
func NewListResourcesHandler(repo domain.ResourceRepository) *ListResourcesHandler {
	return &ListResourcesHandler{repo: repo}
}

// Handle executes the list resources query
func (h *ListResourcesHandler) Handle(ctx context.Context, q ListResourcesQuery) (*ResourcePage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	resources, total, err := h.repo.FindAll(domain.ResourceFilter{
		Type:    q.ResourceType,
		DepotID: q.DepotID,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	items := make([]ResourceView, 0, len(resources))
	for i := range resources {
		items = append(items, NewResourceView(ctx, &resources[i]))
	}
	return &ResourcePage{Total: total, Page: page, Limit: limit, Items: items}, nil
}
