package command

import (
	"fmt"
	"time"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
)

const minPasswordLength = 6

// mutateUser is the load-change-persist step shared by the account
// mutation commands. change runs against the loaded user and may veto the
// write by returning an error.
func mutateUser(repo domain.UserRepository, id uint, change func(*domain.User) error) (*domain.User, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := repo.FindByID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if err := change(user); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()

	if err := repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
