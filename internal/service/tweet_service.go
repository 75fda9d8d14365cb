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
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, ownerID string, req *domain.TweetRequest) (*domain.Tweet, error) {
	owner, err := parseID(ownerID, "user")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: tweet content is required", ErrInvalidArgument)
	}

	now := time.Now()
	tweet := &domain.Tweet{
		Content:   content,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}
	return tweet, nil
}

// ListForUser returns a user's tweets newest first.
func (s *TweetService) ListForUser(ctx context.Context, userID string) (*domain.TweetList, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	tweets, err := s.tweetRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return &domain.TweetList{
		Tweets:      tweets,
		TotalTweets: int64(len(tweets)),
	}, nil
}

func (s *TweetService) Update(ctx context.Context, tweetID, actorID string, req *domain.TweetRequest) (*domain.Tweet, error) {
	id, err := parseID(tweetID, "tweet")
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: tweet content is required", ErrInvalidArgument)
	}

	tweet, err := s.tweetRepo.UpdateOwned(ctx, id, actor, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.ownershipError(ctx, id)
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, tweetID, actorID string) error {
	id, err := parseID(tweetID, "tweet")
	if err != nil {
		return err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return err
	}

	if err := s.tweetRepo.DeleteOwned(ctx, id, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.ownershipError(ctx, id)
		}
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return nil
}

func (s *TweetService) ownershipError(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.tweetRepo.FindByID(ctx, id); err == nil {
		return fmt.Errorf("%w: only the author can modify this tweet", ErrForbidden)
	}
	return fmt.Errorf("%w: tweet not found", ErrNotFound)
}
