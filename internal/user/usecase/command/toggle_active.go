package command

import (
	"fmt"
	"time"

	"github.com/fleetops/depot-backend/internal/user/domain"
)

// ToggleActiveCommand represents the command to activate or deactivate a user
type ToggleActiveCommand struct {
	UserID   uint
	IsActive bool
}

// ToggleActiveHandler handles the toggle active command
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command. Deactivated technicians
// stop being eligible for new reservations but keep their ledger history.
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	user.IsActive = cmd.IsActive
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to toggle active: %w", err)
	}

	return user, nil
}
