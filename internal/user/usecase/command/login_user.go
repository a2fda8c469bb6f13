package command

import (
	"fmt"
	"time"

	"github.com/fleetops/depot-backend/internal/user/domain"
	"github.com/fleetops/depot-backend/pkg/auth"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login user command. Unknown username and wrong
// password answer identically so the login form cannot be used to probe
// which technician accounts exist.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		logger.Logger.Warn().
			Str("username", cmd.Username).
			Msg("Login attempt for unknown username")
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		logger.Logger.Warn().
			Str("username", cmd.Username).
			Uint("user_id", user.ID).
			Msg("Login attempt with wrong password")
		return nil, fmt.Errorf("invalid credentials")
	}

	// Deactivated accounts keep their history but cannot log in or
	// receive attributed stock
	if !user.IsActive {
		logger.Logger.Warn().
			Str("username", cmd.Username).
			Uint("user_id", user.ID).
			Msg("Login attempt on deactivated account")
		return nil, fmt.Errorf("account is deactivated")
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := h.repo.Update(user); err != nil {
		// The login itself succeeded; a stale timestamp is not worth
		// failing it over
		logger.Logger.Warn().
			Err(err).
			Uint("user_id", user.ID).
			Msg("Failed to record last login time")
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
