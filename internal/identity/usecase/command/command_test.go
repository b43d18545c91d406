package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-scm/scm-platform/internal/identity/domain"
	"github.com/nexus-scm/scm-platform/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountActive() (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.IsActive {
			count++
		}
	}
	return count, nil
}

func registerTestUser(t *testing.T, repo *fakeUserRepo, username, password string) *domain.User {
	t.Helper()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Adams",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	registerTestUser(t, repo, "alice", "secret123")

	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
		FullName: "Other Alice",
	})

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	registerTestUser(t, repo, "alice", "secret123")

	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Bob",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterUserShortPassword(t *testing.T) {
	_, err := NewRegisterUserHandler(newFakeUserRepo()).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
		FullName: "Alice",
	})

	assert.Error(t, err)
}

func TestRegisterUserInvalidRole(t *testing.T) {
	_, err := NewRegisterUserHandler(newFakeUserRepo()).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registerTestUser(t, repo, "alice", "secret123")

	resp, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "alice",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	registerTestUser(t, repo, "alice", "secret123")

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUserUnknownUsername(t *testing.T) {
	_, err := NewLoginUserHandler(newFakeUserRepo()).Handle(LoginUserCommand{
		Username: "ghost",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUserDisabledAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerTestUser(t, repo, "alice", "secret123")

	stored := repo.users[user.ID]
	stored.IsActive = false

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "alice",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerTestUser(t, repo, "alice", "secret123")

	updated, err := NewChangeRoleHandler(repo).Handle(ChangeRoleCommand{
		UserID: user.ID,
		Role:   domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = NewChangeRoleHandler(repo).Handle(ChangeRoleCommand{
		UserID: user.ID,
		Role:   "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegisterUserNormalizesIdentifiers(t *testing.T) {
	repo := newFakeUserRepo()

	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "  Alice ",
		Email:    " Alice@Example.COM",
		Password: "secret123",
		FullName: " Alice Adams ",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice Adams", user.FullName)

	// Login matches regardless of the casing the caller types.
	resp, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "ALICE",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterUserRejectsMalformedEmail(t *testing.T) {
	_, err := NewRegisterUserHandler(newFakeUserRepo()).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "not-an-email",
		Password: "secret123",
		FullName: "Alice",
	})

	assert.Error(t, err)
}

func TestToggleActive(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerTestUser(t, repo, "alice", "secret123")

	updated, err := NewToggleActiveHandler(repo).Handle(ToggleActiveCommand{
		UserID:   user.ID,
		IsActive: false,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = NewToggleActiveHandler(repo).Handle(ToggleActiveCommand{UserID: 9999, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
