package query

import (
	"github.com/fleetops/depot-backend/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
	Role   string
	Active *bool
	Search string
}

// ListUsersResult carries one page plus the total match count
type ListUsersResult struct {
	Users  []domain.User `json:"users"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListUsersHandler handles the list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) (*ListUsersResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	users, total, err := h.repo.List(domain.UserFilter{
		Role:   q.Role,
		Active: q.Active,
		Search: q.Search,
		Limit:  limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{
		Users:  users,
		Total:  total,
		Limit:  limit,
		Offset: q.Offset,
	}, nil
}
