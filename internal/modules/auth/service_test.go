package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct{ u *user.User }

func (r *fakeUserRepo) CreateUser(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.u == nil || r.u.Email != email {
		return nil, fmt.Errorf("user not found")
	}
	return r.u, nil
}
func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	return r.u, nil
}

func newLoginFixture(t *testing.T, password string) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return NewService(&fakeUserRepo{u: &user.User{
		ID:           uuid.New(),
		Email:        "awa@teranga.sn",
		PasswordHash: string(hash),
		Role:         user.RoleSupplier,
	}})
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newLoginFixture(t, "secret123")

	token, err := svc.Login(context.Background(), "awa@teranga.sn", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newLoginFixture(t, "secret123")

	if _, err := svc.Login(context.Background(), "awa@teranga.sn", "wrong"); err == nil {
		t.Fatal("expected invalid credentials")
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := newLoginFixture(t, "secret123")

	if _, err := svc.Login(context.Background(), "nobody@teranga.sn", "secret123"); err == nil {
		t.Fatal("expected invalid credentials")
	}
}
