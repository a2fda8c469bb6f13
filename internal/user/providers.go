package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/user/delivery/http"
	"github.com/fleetops/depot-backend/internal/user/domain"
	"github.com/fleetops/depot-backend/internal/user/repository"
	"github.com/fleetops/depot-backend/internal/user/usecase/command"
	"github.com/fleetops/depot-backend/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideCommandHandlers provides all command handlers
func ProvideCommandHandlers(repo domain.UserRepository) *http.CommandHandlers {
	return &http.CommandHandlers{
		RegisterHandler:     command.NewRegisterUserHandler(repo),
		LoginHandler:        command.NewLoginUserHandler(repo),
		UpdateHandler:       command.NewUpdateUserHandler(repo),
		DeleteHandler:       command.NewDeleteUserHandler(repo),
		ChangeRoleHandler:   command.NewChangeRoleHandler(repo),
		ToggleActiveHandler: command.NewToggleActiveHandler(repo),
	}
}

// ProvideQueryHandlers provides all query handlers
func ProvideQueryHandlers(repo domain.UserRepository) *http.QueryHandlers {
	return &http.QueryHandlers{
		GetUserHandler: query.NewGetUserHandler(repo),
		ListHandler:    query.NewListUsersHandler(repo),
		StatsHandler:   query.NewGetStatsHandler(repo),
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCommandHandlers,
	ProvideQueryHandlers,
)
