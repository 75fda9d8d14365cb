package service

import (
	"context"
	"fmt"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/pipeline"
	"github.com/anikettiwarime/VideoTube/internal/repository"
)

type DashboardService struct {
	videoRepo        repository.VideoRepository
	subscriptionRepo repository.SubscriptionRepository
	likeRepo         repository.LikeRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, subscriptionRepo repository.SubscriptionRepository, likeRepo repository.LikeRepository) *DashboardService {
	return &DashboardService{
		videoRepo:        videoRepo,
		subscriptionRepo: subscriptionRepo,
		likeRepo:         likeRepo,
	}
}

// ChannelStats aggregates a channel's totals. A channel with no videos
// still resolves, with zero views, videos and likes.
func (s *DashboardService) ChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}

	videoStats, err := s.videoRepo.OwnerStats(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate video stats: %w", err)
	}

	subscribers, err := s.subscriptionRepo.CountForChannel(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var likes int64
	if len(videoStats.VideoIDs) > 0 {
		likes, err = s.likeRepo.CountForVideos(ctx, videoStats.VideoIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to count likes: %w", err)
		}
	}

	return &domain.ChannelStats{
		TotalVideoViews:  videoStats.TotalViews,
		TotalVideos:      videoStats.TotalVideos,
		TotalSubscribers: subscribers,
		TotalLikes:       likes,
	}, nil
}

// ChannelVideos pages through everything the channel has uploaded,
// drafts included.
func (s *DashboardService) ChannelVideos(ctx context.Context, channelID string, page, limit int64) (*domain.VideoPage, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = pipeline.DefaultPage
	}
	if limit < 1 {
		limit = pipeline.DefaultLimit
	}

	result, err := s.videoRepo.Feed(ctx, repository.VideoFeed{
		Owner:     &channel,
		SortBy:    "createdAt",
		SortOrder: int(domain.SortDescending),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}
	return result, nil
}
