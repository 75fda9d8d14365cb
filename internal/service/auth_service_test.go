package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anikettiwarime/VideoTube/internal/config"
	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/pkg/hash"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:      "test-access-secret",
		RefreshSecret:     "test-refresh-secret",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	}
}

func seedUser(t *testing.T, repo *mockUserRepository, username, email, password string) *domain.User {
	t.Helper()
	hashed, err := hash.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		Username: username,
		Email:    email,
		Fullname: "Seeded User",
		Password: hashed,
		Avatar:   "https://cdn.test/avatars/seed",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        *domain.RegisterRequest
		avatarPath string
		setup      func(repo *mockUserRepository)
		wantErr    error
	}{
		{
			name: "successful registration",
			req: &domain.RegisterRequest{
				Fullname: "New User",
				Username: "NewUser",
				Email:    "New@Example.com",
				Password: "Password123!",
			},
			avatarPath: "/tmp/avatar.png",
		},
		{
			name: "missing avatar",
			req: &domain.RegisterRequest{
				Fullname: "No Avatar",
				Username: "noavatar",
				Email:    "noavatar@example.com",
				Password: "Password123!",
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "duplicate username",
			req: &domain.RegisterRequest{
				Fullname: "Dup",
				Username: "taken",
				Email:    "fresh@example.com",
				Password: "Password123!",
			},
			avatarPath: "/tmp/avatar.png",
			setup: func(repo *mockUserRepository) {
				seedUser(t, repo, "taken", "taken@example.com", "Password123!")
			},
			wantErr: ErrConflict,
		},
		{
			name: "short password",
			req: &domain.RegisterRequest{
				Fullname: "Short",
				Username: "shortpw",
				Email:    "shortpw@example.com",
				Password: "short",
			},
			avatarPath: "/tmp/avatar.png",
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockUserRepository()
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

			user, err := svc.Register(context.Background(), tt.req, tt.avatarPath, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.Username != "newuser" || user.Email != "new@example.com" {
				t.Errorf("identifiers not lowercased: %q %q", user.Username, user.Email)
			}
			if user.Avatar == "" {
				t.Error("avatar URL not set")
			}
			if user.Password == tt.req.Password {
				t.Error("password stored in plaintext")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepository()
	seedUser(t, repo, "viewer", "viewer@example.com", "Password123!")
	svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

	tests := []struct {
		name    string
		req     *domain.LoginRequest
		wantErr error
	}{
		{
			name: "login by username",
			req:  &domain.LoginRequest{Username: "viewer", Password: "Password123!"},
		},
		{
			name: "login by email",
			req:  &domain.LoginRequest{Email: "viewer@example.com", Password: "Password123!"},
		},
		{
			name:    "wrong password",
			req:     &domain.LoginRequest{Username: "viewer", Password: "WrongPassword!"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "unknown user",
			req:     &domain.LoginRequest{Username: "nobody", Password: "Password123!"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "neither username nor email",
			req:     &domain.LoginRequest{Password: "Password123!"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("token pair incomplete")
			}
			if resp.User.RefreshToken != resp.RefreshToken {
				t.Error("refresh token not persisted on user")
			}
		})
	}
}

func TestAuthService_RefreshRotation(t *testing.T) {
	repo := newMockUserRepository()
	seedUser(t, repo, "rotator", "rotator@example.com", "Password123!")
	svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "rotator", Password: "Password123!"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	first := resp.RefreshToken

	// Refresh claims carry second-resolution timestamps; without this
	// the rotated token can be byte-identical to the first.
	time.Sleep(1100 * time.Millisecond)

	pair, err := svc.Refresh(context.Background(), first)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if pair.RefreshToken == first {
		t.Fatal("refresh token was not rotated")
	}

	// The superseded token must now be rejected as a replay.
	if _, err := svc.Refresh(context.Background(), first); !errors.Is(err, ErrTokenReuse) {
		t.Fatalf("replayed token error = %v, want %v", err, ErrTokenReuse)
	}

	// The current token still works.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("current token Refresh() error = %v", err)
	}
}

func TestAuthService_RefreshInvalid(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty token error = %v, want %v", err, ErrUnauthorized)
	}
	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockUserRepository()
	user := seedUser(t, repo, "leaver", "leaver@example.com", "Password123!")
	svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "leaver", Password: "Password123!"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.RefreshToken == "" {
		t.Fatal("expected stored refresh token after login")
	}

	if err := svc.Logout(context.Background(), user.ID.Hex()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if user.RefreshToken != "" {
		t.Error("refresh token not cleared")
	}

	// Logging out twice succeeds.
	if err := svc.Logout(context.Background(), user.ID.Hex()); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newMockUserRepository()
	user := seedUser(t, repo, "changer", "changer@example.com", "OldPassword1!")
	svc := NewAuthService(repo, newMockMediaStore(), testJWTConfig())

	err := svc.ChangePassword(context.Background(), user.ID.Hex(), &domain.ChangePasswordRequest{
		OldPassword: "WrongOld!",
		NewPassword: "NewPassword1!",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong old password error = %v, want %v", err, ErrUnauthorized)
	}

	err = svc.ChangePassword(context.Background(), user.ID.Hex(), &domain.ChangePasswordRequest{
		OldPassword: "OldPassword1!",
		NewPassword: "NewPassword1!",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "changer", Password: "NewPassword1!"}); err != nil {
		t.Errorf("login with new password error = %v", err)
	}
	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "changer", Password: "OldPassword1!"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("login with old password error = %v, want %v", err, ErrUnauthorized)
	}
}
