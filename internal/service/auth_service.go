package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/config"
	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/repository"
	"github.com/anikettiwarime/VideoTube/internal/storage"
	"github.com/anikettiwarime/VideoTube/pkg/hash"
	"github.com/anikettiwarime/VideoTube/pkg/jwt"
)

type AuthService struct {
	userRepo repository.UserRepository
	media    storage.MediaStore
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, media storage.MediaStore, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		media:    media,
		jwtCfg:   jwtCfg,
	}
}

// Register creates an account. The avatar is required and both images
// are uploaded before the user document is written; a failed avatar
// upload aborts registration.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest, avatarPath, coverPath string) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.UsernameOrEmailExists(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: user with this username or email already exists", ErrConflict)
	}

	hashedPassword, err := hash.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}

	if avatarPath == "" {
		return nil, fmt.Errorf("%w: avatar is required", ErrInvalidArgument)
	}

	avatarURL, err := s.media.UploadLocalFile(ctx, avatarPath, storage.FolderAvatars)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	coverURL := ""
	if coverPath != "" {
		coverURL, err = s.media.UploadLocalFile(ctx, coverPath, storage.FolderCovers)
		if err != nil {
			return nil, fmt.Errorf("failed to upload cover image: %w", err)
		}
	}

	now := time.Now()
	user := &domain.User{
		Username:     username,
		Email:        email,
		Fullname:     strings.TrimSpace(req.Fullname),
		Password:     hashedPassword,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		WatchHistory: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with this username or email already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the password and issues a fresh token pair, storing
// the refresh token on the user record.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: username or email is required", ErrInvalidArgument)
	}

	var user *domain.User
	var err error
	if req.Username != "" {
		user, err = s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	} else {
		user, err = s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// Refresh rotates a refresh token. A token that validates but no
// longer matches the stored value is a replay of a superseded token.
func (s *AuthService) Refresh(ctx context.Context, incoming string) (*domain.TokenPair, error) {
	if incoming == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrUnauthorized)
	}

	claims, err := jwt.ValidateRefreshToken(incoming, s.jwtCfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token is invalid or expired", ErrInvalidToken)
	}

	userID, err := parseID(claims.UserID, "user")
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token subject is not valid", ErrInvalidToken)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: refresh token subject does not exist", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.RefreshToken != incoming {
		return nil, fmt.Errorf("%w", ErrTokenReuse)
	}

	return s.issuePair(ctx, user)
}

// Logout clears the stored refresh token. Safe to call repeatedly.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}

	if err := s.userRepo.SetRefreshToken(ctx, id, ""); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// ChangePassword rehashes only because the password actually changed;
// no other write path touches the stored hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *domain.ChangePasswordRequest) error {
	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := hash.Compare(user.Password, req.OldPassword); err != nil {
		return fmt.Errorf("%w: old password is incorrect", ErrUnauthorized)
	}

	hashedPassword, err := hash.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}

	if err := s.userRepo.SetPassword(ctx, id, hashedPassword); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(jwt.TokenUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
		Avatar:   user.Avatar,
	}, s.jwtCfg.AccessExpiration, s.jwtCfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID.Hex(), s.jwtCfg.RefreshExpiration, s.jwtCfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Persisting the new value invalidates whatever token was stored
	// before: single active session per user.
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = refreshToken

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtCfg.AccessExpiration.Seconds()),
	}, nil
}
