package command

import (
	"fmt"
	"strings"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
	"github.com/nexus-scm/scm-platform/pkg/auth"
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

// Handle verifies the credentials and issues a signed token. Every
// credential failure collapses into ErrInvalidCredentials so the response
// never says which part was wrong.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(cmd.Username))
	if username == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := h.repo.FindByUsername(username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// The password is checked before the active flag: only a caller who
	// knows the password learns that the account is disabled.
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}
