package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
)

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (r *fakeUsersRepo) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Roles:        params.Roles,
		Level:        1,
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUsersRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeUsersRepo) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Level != nil {
		u.Level = *req.Level
	}
	return u, nil
}

func (r *fakeUsersRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}

// fakeHasher marks hashes with a prefix instead of real bcrypt so tests
// stay fast
type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) CheckPassword(hash, password string) bool {
	return hash == "hashed:"+password
}

func TestRegister(t *testing.T) {
	app := NewApp(newFakeUsersRepo(), fakeHasher{})

	user, err := app.Register(context.Background(), RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "hunter22hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "hunter22hunter22" {
		t.Error("password stored in clear")
	}
	if len(user.Roles) != 1 || user.Roles[0] != models.RoleUser {
		t.Errorf("roles = %v, want [%s]", user.Roles, models.RoleUser)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := NewApp(newFakeUsersRepo(), fakeHasher{})

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty email", RegisterRequest{Password: "longenough1"}},
		{"malformed email", RegisterRequest{Email: "not-an-email", Password: "longenough1"}},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.Register(context.Background(), tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := NewApp(newFakeUsersRepo(), fakeHasher{})
	req := RegisterRequest{Name: "bob", Email: "bob@example.com", Password: "hunter22hunter22"}

	if _, err := app.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := app.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	app := NewApp(newFakeUsersRepo(), fakeHasher{})
	registered, err := app.Register(context.Background(), RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "hunter22hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := app.Authenticate(context.Background(), LoginRequest{Email: "bob@example.com", Password: "hunter22hunter22"})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authenticated id = %s, want %s", user.ID, registered.ID)
	}

	if _, err := app.Authenticate(context.Background(), LoginRequest{Email: "bob@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := app.Authenticate(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	app := NewApp(newFakeUsersRepo(), fakeHasher{})
	user, err := app.Register(context.Background(), RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "hunter22hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	level := 0
	if _, err := app.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Level: &level}); err == nil {
		t.Error("expected validation error for level below 1")
	}

	name := "robert"
	updated, err := app.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "robert" {
		t.Errorf("Name = %q, want robert", updated.Name)
	}
}
