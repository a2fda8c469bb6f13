package query

import (
	"fmt"

	"github.com/fleetops/depot-backend/internal/user/domain"
)

// GetStatsQuery represents the query for user statistics
type GetStatsQuery struct{}

// UserStats holds aggregate account counts
type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	Technicians int64 `json:"technicians"`
	Managers    int64 `json:"managers"`
	Admins      int64 `json:"admins"`
}

// GetStatsHandler handles the get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*UserStats, error) {
	counts, err := h.repo.RoleCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	active, err := h.repo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	return &UserStats{
		TotalUsers:  total,
		ActiveUsers: active,
		Technicians: counts[domain.RoleTechnician],
		Managers:    counts[domain.RoleManager],
		Admins:      counts[domain.RoleAdmin],
	}, nil
}
