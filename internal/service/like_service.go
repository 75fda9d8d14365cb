package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle flips the like relation for one target. Liking a liked target
// removes the like; the end state alone decides the outcome, so the
// operation is idempotent per direction.
func (s *LikeService) Toggle(ctx context.Context, kind domain.LikeKind, targetID, actorID string) (*domain.ToggleResult, error) {
	target, err := parseID(targetID, string(kind))
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	if err := s.targetExists(ctx, kind, target); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, kind, target, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		if err := s.likeRepo.Delete(ctx, kind, target, actor); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		return &domain.ToggleResult{State: domain.ToggleRemoved}, nil
	}

	like, err := s.likeRepo.Create(ctx, kind, target, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}
	return &domain.ToggleResult{State: domain.ToggleAdded, Record: like}, nil
}

// LikedVideos returns the actor's video likes.
func (s *LikeService) LikedVideos(ctx context.Context, actorID string) ([]*domain.Like, error) {
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.ListVideoLikes(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	return likes, nil
}

func (s *LikeService) targetExists(ctx context.Context, kind domain.LikeKind, target primitive.ObjectID) error {
	var err error
	switch kind {
	case domain.LikeKindVideo:
		_, err = s.videoRepo.FindByID(ctx, target)
	case domain.LikeKindComment:
		_, err = s.commentRepo.FindByID(ctx, target)
	case domain.LikeKindTweet:
		_, err = s.tweetRepo.FindByID(ctx, target)
	default:
		return fmt.Errorf("%w: unknown like target %q", ErrInvalidArgument, kind)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s not found", ErrNotFound, kind)
		}
		return fmt.Errorf("failed to find %s: %w", kind, err)
	}
	return nil
}
