package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	s := NewAuthService(newMemUsers())
	ctx := context.Background()

	user, err := s.Register(ctx, "", "Ava@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ava@example.com" || user.Handle != "@ava" || user.Name != "ava" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Password == "secret1" || user.Avatar == "" {
		t.Errorf("password should be hashed and avatar set")
	}

	got, err := s.Login(ctx, "AVA@example.com ", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("logged in as %s, want %s", got.ID, user.ID)
	}

	if _, err := s.Login(ctx, "ava@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := s.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: %v", err)
	}
	if _, err := s.Register(ctx, "Ava 2", "ava@example.com", "secret2"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := NewAuthService(newMemUsers())
	ctx := context.Background()

	cases := map[string][3]string{
		"bad email":      {"A", "not-an-email", "secret1"},
		"short password": {"A", "a@example.com", "12345"},
		"long name":      {strings.Repeat("x", 51), "b@example.com", "secret1"},
	}
	for name, c := range cases {
		if _, err := s.Register(ctx, c[0], c[1], c[2]); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestUpdateUser(t *testing.T) {
	s := NewAuthService(newMemUsers())
	ctx := context.Background()

	user, err := s.Register(ctx, "Leo", "leo@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	name, bio := " Leo Park ", "builds things"
	updated, err := s.UpdateUser(ctx, user.ID, UserUpdate{Name: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Leo Park" || updated.Bio != bio || updated.Avatar != user.Avatar {
		t.Errorf("unexpected update %+v", updated)
	}

	empty := "  "
	if _, err := s.UpdateUser(ctx, user.ID, UserUpdate{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: %v", err)
	}
	badAvatar := "nope"
	if _, err := s.UpdateUser(ctx, user.ID, UserUpdate{Avatar: &badAvatar}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad avatar: %v", err)
	}
	if _, err := s.UpdateUser(ctx, "missing", UserUpdate{Bio: &bio}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user: %v", err)
	}

	stored, _ := s.GetUser(ctx, user.ID)
	if stored.Name != "Leo Park" {
		t.Errorf("update not persisted")
	}
}
