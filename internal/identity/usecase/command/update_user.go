package command

import (
	"fmt"
	"strings"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
	"github.com/nexus-scm/scm-platform/pkg/auth"
)

// UpdateUserCommand represents the command to update a user. Password is
// optional and re-hashed when provided.
type UpdateUserCommand struct {
	ID       uint
	Email    string
	FullName string
	Password string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	return mutateUser(h.repo, cmd.ID, func(user *domain.User) error {
		// The new email must not belong to another account
		if cmd.Email != user.Email {
			if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil && existing.ID != user.ID {
				return domain.ErrEmailTaken
			}
		}
		user.Email = cmd.Email
		user.FullName = cmd.FullName

		if cmd.Password == "" {
			return nil
		}
		if len(cmd.Password) < minPasswordLength {
			return fmt.Errorf("password must be at least %d characters", minPasswordLength)
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
		return nil
	})
}
