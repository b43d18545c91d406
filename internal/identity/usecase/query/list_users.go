package query

import (
	"fmt"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
)

// ListUsersQuery represents the query to list users with optional role filter
type ListUsersQuery struct {
	Role   string
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	var (
		users []domain.User
		err   error
	)

	if q.Role != "" {
		users, err = h.repo.FindByRole(q.Role, q.Limit, q.Offset)
	} else {
		users, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
