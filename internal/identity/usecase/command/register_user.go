package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
	"github.com/nexus-scm/scm-platform/pkg/auth"
)

// RegisterUserCommand registers a new account. Role is optional and
// defaults to the regular user role.
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// normalize lowercases the login identifiers so lookups and the unique
// indexes agree on one canonical spelling.
func (cmd *RegisterUserCommand) normalize() {
	cmd.Username = strings.ToLower(strings.TrimSpace(cmd.Username))
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	if cmd.Role == "" {
		cmd.Role = domain.RoleUser
	}
}

func (cmd *RegisterUserCommand) validate() error {
	switch {
	case cmd.Username == "":
		return fmt.Errorf("username is required")
	case cmd.Email == "":
		return fmt.Errorf("email is required")
	case !strings.Contains(cmd.Email, "@"):
		return fmt.Errorf("email is not valid")
	case cmd.FullName == "":
		return fmt.Errorf("full name is required")
	case len(cmd.Password) < minPasswordLength:
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if !domain.ValidRole(cmd.Role) {
		return domain.ErrInvalidRole
	}
	return nil
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	cmd.normalize()
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashed,
		FullName:  cmd.FullName,
		Role:      cmd.Role,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
