package service

import (
	"errors"
	"testing"

	"github.com/pricepulse/internal/config"
	"github.com/pricepulse/internal/constants"
	"github.com/pricepulse/internal/repository"
)

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "unit-test-secret-key-0123456789abcdef",
			ExpireHours: 1,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	db := newServiceTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewAuthService(newTestConfig(), userRepo), userRepo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register("  ", "secret123"); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.Register("alice", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}

	user, err := svc.Register("alice", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected non-zero user id")
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %d", user.Status)
	}

	if _, err := svc.Register("alice", "another"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, userRepo := newTestAuthService(t)

	if _, err := svc.Register("bob", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	user, token, expiresAt, err := svc.Login("bob", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry time")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}

	// 禁用用户不能登录
	user.Status = constants.UserStatusDisabled
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("bob", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestAuthenticate_TokenLifecycle(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register("carol", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user, token, _, err := svc.Login("carol", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	authed, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if authed.ID != user.ID || authed.Username != "carol" {
		t.Fatalf("unexpected authenticated user: %+v", authed)
	}

	if _, err := svc.Authenticate("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage token, got %v", err)
	}

	// 退出登录后旧 Token 全部失效
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after logout, got %v", err)
	}

	// 重新登录签发的新 Token 可用
	_, fresh, _, err := svc.Login("carol", "secret123")
	if err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
	if _, err := svc.Authenticate(fresh); err != nil {
		t.Fatalf("authenticate fresh token failed: %v", err)
	}
}
