package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/pipeline"
	"github.com/anikettiwarime/VideoTube/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *CommentService) Add(ctx context.Context, videoID, ownerID string, req *domain.CommentRequest) (*domain.Comment, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	owner, err := parseID(ownerID, "user")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidArgument)
	}

	if _, err := s.videoRepo.FindByID(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}

	now := time.Now()
	comment := &domain.Comment{
		Content:   content,
		Owner:     owner,
		Video:     video,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, actorID string, req *domain.CommentRequest) (*domain.Comment, error) {
	id, err := parseID(commentID, "comment")
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidArgument)
	}

	comment, err := s.commentRepo.UpdateOwned(ctx, id, actor, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.ownershipError(ctx, id)
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// ownershipError tells a missing comment apart from someone else's:
// the owned filter matches neither, so look the id up once more.
func (s *CommentService) ownershipError(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.commentRepo.FindByID(ctx, id); err == nil {
		return fmt.Errorf("%w: only the author can modify this comment", ErrForbidden)
	}
	return fmt.Errorf("%w: comment not found", ErrNotFound)
}

func (s *CommentService) Delete(ctx context.Context, commentID, actorID string) error {
	id, err := parseID(commentID, "comment")
	if err != nil {
		return err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return err
	}

	if err := s.commentRepo.DeleteOwned(ctx, id, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.ownershipError(ctx, id)
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ListForVideo returns newest-first comments for a video, joined with
// their authors.
func (s *CommentService) ListForVideo(ctx context.Context, videoID string, page, limit int64) ([]domain.CommentWithOwner, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = pipeline.DefaultPage
	}
	if limit < 1 {
		limit = pipeline.DefaultLimit
	}

	comments, err := s.commentRepo.ListByVideo(ctx, video, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
