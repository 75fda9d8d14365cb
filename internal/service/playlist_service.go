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

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID string, req *domain.CreatePlaylistRequest) (*domain.Playlist, error) {
	owner, err := parseID(ownerID, "user")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", ErrInvalidArgument)
	}

	now := time.Now()
	playlist := &domain.Playlist{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Owner:       owner,
		Videos:      []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	id, err := parseID(playlistID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: playlist not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) ListForUser(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	playlists, err := s.playlistRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID string, req *domain.UpdatePlaylistRequest) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" && req.Description == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	if req.Name != "" {
		playlist.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		playlist.Description = strings.TrimSpace(req.Description)
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID string) error {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(ctx, playlist.ID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// AddVideo appends the video unless it is already present. Adding a
// video twice is a no-op that still succeeds.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID string) (*domain.Playlist, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.FindByID(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: video not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}

	for _, existing := range playlist.Videos {
		if existing == video {
			return playlist, nil
		}
	}

	playlist.Videos = append(playlist.Videos, video)
	playlist.UpdatedAt = time.Now()
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return playlist, nil
}

// RemoveVideo drops the video from the playlist, keeping the order of
// the remaining entries.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) (*domain.Playlist, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}

	kept := playlist.Videos[:0]
	found := false
	for _, existing := range playlist.Videos {
		if existing == video {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil, fmt.Errorf("%w: video is not in this playlist", ErrNotFound)
	}

	playlist.Videos = kept
	playlist.UpdatedAt = time.Now()
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, actorID string) (*domain.Playlist, error) {
	id, err := parseID(playlistID, "playlist")
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	playlist, err := s.playlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: playlist not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}
	if playlist.Owner != actor {
		return nil, fmt.Errorf("%w: only the owner can modify this playlist", ErrForbidden)
	}
	return playlist, nil
}
