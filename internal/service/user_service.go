package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/repository"
	"github.com/anikettiwarime/VideoTube/internal/storage"
)

type UserService struct {
	userRepo repository.UserRepository
	media    storage.MediaStore
}

func NewUserService(userRepo repository.UserRepository, media storage.MediaStore) *UserService {
	return &UserService{userRepo: userRepo, media: media}
}

func (s *UserService) Current(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID string, req *domain.UpdateAccountRequest) (*domain.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if req.Fullname == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if req.Fullname != "" {
		user.Fullname = strings.TrimSpace(req.Fullname)
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateAvatar swaps the avatar. The previous object is removed only
// after both the upload and the document write succeed.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, localPath, storage.FolderAvatars, "avatar")
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, localPath, storage.FolderCovers, "cover image")
}

func (s *UserService) updateImage(ctx context.Context, userID, localPath, folder, what string) (*domain.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if localPath == "" {
		return nil, fmt.Errorf("%w: %s file is required", ErrInvalidArgument, what)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	url, err := s.media.UploadLocalFile(ctx, localPath, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", what, err)
	}

	var previous string
	switch folder {
	case storage.FolderAvatars:
		previous = user.Avatar
		user.Avatar = url
	case storage.FolderCovers:
		previous = user.CoverImage
		user.CoverImage = url
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if previous != "" {
		// Best effort: a dangling object is preferable to failing the
		// request after the document already points at the new one.
		_ = s.media.Delete(ctx, folder, previous)
	}
	return user, nil
}

// ChannelProfile resolves a public channel page. viewerID may be empty
// for unauthenticated requests, in which case isSubscribed is false.
func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	viewer := primitive.NilObjectID
	if viewerID != "" {
		id, err := parseID(viewerID, "user")
		if err != nil {
			return nil, err
		}
		viewer = id
	}

	profile, err := s.userRepo.ChannelProfile(ctx, username, viewer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: channel does not exist", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve channel profile: %w", err)
	}
	return profile, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	history, err := s.userRepo.WatchHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	return history, nil
}
