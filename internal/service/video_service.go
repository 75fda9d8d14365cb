package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/media"
	"github.com/anikettiwarime/VideoTube/internal/pipeline"
	"github.com/anikettiwarime/VideoTube/internal/repository"
	"github.com/anikettiwarime/VideoTube/internal/storage"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	store     storage.MediaStore
	prober    media.DurationProber
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, store storage.MediaStore, prober media.DurationProber) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		prober:    prober,
	}
}

// Publish probes the duration before anything is uploaded, so a broken
// file never leaves an orphaned object behind. Uploaded assets are
// rolled back if a later step fails.
func (s *VideoService) Publish(ctx context.Context, ownerID string, req *domain.PublishVideoRequest, videoPath, thumbnailPath string) (*domain.Video, error) {
	owner, err := parseID(ownerID, "user")
	if err != nil {
		return nil, err
	}
	if videoPath == "" {
		cleanupTemp(thumbnailPath)
		return nil, fmt.Errorf("%w: video file is required", ErrInvalidArgument)
	}
	if thumbnailPath == "" {
		cleanupTemp(videoPath)
		return nil, fmt.Errorf("%w: thumbnail file is required", ErrInvalidArgument)
	}

	duration, err := s.prober.Duration(ctx, videoPath)
	if err != nil {
		cleanupTemp(videoPath, thumbnailPath)
		return nil, fmt.Errorf("%w: could not read video duration: %s", ErrInvalidArgument, err.Error())
	}

	videoURL, err := s.store.UploadLocalFile(ctx, videoPath, storage.FolderVideos)
	if err != nil {
		cleanupTemp(thumbnailPath)
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	thumbnailURL, err := s.store.UploadLocalFile(ctx, thumbnailPath, storage.FolderThumbnails)
	if err != nil {
		_ = s.store.Delete(ctx, storage.FolderVideos, videoURL)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	now := time.Now()
	video := &domain.Video{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Thumbnail:   thumbnailURL,
		VideoURL:    videoURL,
		Duration:    duration,
		ViewCount:   0,
		IsPublished: true,
		Owner:       owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		_ = s.store.Delete(ctx, storage.FolderVideos, videoURL)
		_ = s.store.Delete(ctx, storage.FolderThumbnails, thumbnailURL)
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return video, nil
}

// Feed runs the paginated search pipeline. Viewer-facing feeds only
// see published videos.
func (s *VideoService) Feed(ctx context.Context, opts domain.VideoFeedOptions) (*domain.VideoPage, error) {
	feed := repository.VideoFeed{
		Query:         strings.TrimSpace(opts.Query),
		PublishedOnly: opts.PublishedOnly,
		Page:          opts.Page,
		Limit:         opts.Limit,
	}
	if feed.Page < 1 {
		feed.Page = pipeline.DefaultPage
	}
	if feed.Limit < 1 {
		feed.Limit = pipeline.DefaultLimit
	}

	if opts.OwnerID != "" {
		owner, err := parseID(opts.OwnerID, "user")
		if err != nil {
			return nil, err
		}
		feed.Owner = &owner
	}

	if opts.SortBy != "" {
		feed.SortBy = opts.SortBy
		feed.SortOrder = int(opts.SortOrder)
		if feed.SortOrder == 0 {
			feed.SortOrder = int(domain.SortDescending)
		}
	}

	page, err := s.videoRepo.Feed(ctx, feed)
	if err != nil {
		return nil, fmt.Errorf("failed to query video feed: %w", err)
	}
	return page, nil
}

func (s *VideoService) Detail(ctx context.Context, videoID string) (*domain.VideoDetail, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	detail, err := s.videoRepo.DetailWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load video: %w", err)
	}
	return detail, nil
}

// Watch loads the video for playback, bumps the view counter and puts
// the video at the front of the viewer's watch history.
func (s *VideoService) Watch(ctx context.Context, videoID, viewerID string) (*domain.VideoDetail, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	viewer, err := parseID(viewerID, "user")
	if err != nil {
		return nil, err
	}

	detail, err := s.videoRepo.DetailWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load video: %w", err)
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	detail.ViewCount++

	if err := s.userRepo.RecordWatch(ctx, viewer, id); err != nil {
		return nil, fmt.Errorf("failed to record watch history: %w", err)
	}
	return detail, nil
}

// Update edits title, description and optionally the thumbnail. Only
// the owner may edit.
func (s *VideoService) Update(ctx context.Context, videoID, actorID string, req *domain.UpdateVideoRequest, thumbnailPath string) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, actorID)
	if err != nil {
		cleanupTemp(thumbnailPath)
		return nil, err
	}

	if req.Title != "" {
		video.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		video.Description = strings.TrimSpace(req.Description)
	}

	var previousThumbnail string
	if thumbnailPath != "" {
		url, err := s.store.UploadLocalFile(ctx, thumbnailPath, storage.FolderThumbnails)
		if err != nil {
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		previousThumbnail = video.Thumbnail
		video.Thumbnail = url
	}
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	if previousThumbnail != "" {
		_ = s.store.Delete(ctx, storage.FolderThumbnails, previousThumbnail)
	}
	return video, nil
}

// Delete removes the document first, then the stored media. Object
// removal is best effort once the document is gone.
func (s *VideoService) Delete(ctx context.Context, videoID, actorID string) error {
	video, err := s.ownedVideo(ctx, videoID, actorID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return fmt.Errorf("failed to delete video: %w", err)
	}

	_ = s.store.Delete(ctx, storage.FolderVideos, video.VideoURL)
	_ = s.store.Delete(ctx, storage.FolderThumbnails, video.Thumbnail)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, videoID, actorID string) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now()
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, actorID string) (*domain.Video, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	if video.Owner != actor {
		return nil, fmt.Errorf("%w: only the owner can modify this video", ErrForbidden)
	}
	return video, nil
}

func cleanupTemp(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
