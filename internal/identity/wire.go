//go:build wireinject
// +build wireinject

package identity

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/nexus-scm/scm-platform/internal/identity/delivery/http"
	"github.com/nexus-scm/scm-platform/internal/identity/domain"
	"github.com/nexus-scm/scm-platform/internal/identity/repository"
	"github.com/nexus-scm/scm-platform/internal/identity/usecase/command"
	"github.com/nexus-scm/scm-platform/internal/identity/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewUpdateUserHandler,
	command.NewDeleteUserHandler,
	command.NewChangeRoleHandler,
	command.NewToggleActiveHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandler,
	)
	return nil, nil
}
