package command

import (
	"github.com/nexus-scm/scm-platform/internal/identity/domain"
)

// ChangeRoleCommand represents the command to change user role (admin only)
type ChangeRoleCommand struct {
	UserID uint
	Role   string
}

// ChangeRoleHandler handles user role change command
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(cmd ChangeRoleCommand) (*domain.User, error) {
	if !domain.ValidRole(cmd.Role) {
		return nil, domain.ErrInvalidRole
	}
	return mutateUser(h.repo, cmd.UserID, func(user *domain.User) error {
		user.Role = cmd.Role
		return nil
	})
}
