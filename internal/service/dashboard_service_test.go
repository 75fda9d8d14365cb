package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
)

func TestDashboardService_ChannelStats(t *testing.T) {
	videos := newMockVideoRepository()
	subs := newMockSubscriptionRepository()
	likes := newMockLikeRepository()
	svc := NewDashboardService(videos, subs, likes)

	channel := primitive.NewObjectID()
	fan := primitive.NewObjectID()

	v1 := seedVideo(videos, channel, "one", 100, true, time.Now())
	v2 := seedVideo(videos, channel, "two", 50, false, time.Now())
	seedVideo(videos, primitive.NewObjectID(), "other channel", 999, true, time.Now())

	if _, err := subs.Create(context.Background(), fan, channel); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	if _, err := likes.Create(context.Background(), domain.LikeKindVideo, v1.ID, fan); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if _, err := likes.Create(context.Background(), domain.LikeKindVideo, v2.ID, fan); err != nil {
		t.Fatalf("seed like: %v", err)
	}

	stats, err := svc.ChannelStats(context.Background(), channel.Hex())
	if err != nil {
		t.Fatalf("ChannelStats() error = %v", err)
	}
	if stats.TotalVideos != 2 {
		t.Errorf("totalVideos = %d, want 2 (drafts included)", stats.TotalVideos)
	}
	if stats.TotalVideoViews != 150 {
		t.Errorf("totalVideoViews = %d, want 150", stats.TotalVideoViews)
	}
	if stats.TotalSubscribers != 1 {
		t.Errorf("totalSubscribers = %d, want 1", stats.TotalSubscribers)
	}
	if stats.TotalLikes != 2 {
		t.Errorf("totalLikes = %d, want 2", stats.TotalLikes)
	}
}

func TestDashboardService_EmptyChannel(t *testing.T) {
	svc := NewDashboardService(newMockVideoRepository(), newMockSubscriptionRepository(), newMockLikeRepository())

	stats, err := svc.ChannelStats(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("ChannelStats() error = %v", err)
	}
	if stats.TotalVideos != 0 || stats.TotalVideoViews != 0 || stats.TotalSubscribers != 0 || stats.TotalLikes != 0 {
		t.Errorf("empty channel stats = %+v, want all zero", stats)
	}
}

func TestDashboardService_ChannelVideos(t *testing.T) {
	videos := newMockVideoRepository()
	svc := NewDashboardService(videos, newMockSubscriptionRepository(), newMockLikeRepository())

	channel := primitive.NewObjectID()
	base := time.Now().Add(-time.Hour)
	seedVideo(videos, channel, "published", 0, true, base)
	seedVideo(videos, channel, "draft", 0, false, base.Add(time.Minute))

	page, err := svc.ChannelVideos(context.Background(), channel.Hex(), 0, 0)
	if err != nil {
		t.Fatalf("ChannelVideos() error = %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2 (drafts visible to the owner)", page.TotalCount)
	}
	if videos.lastFeed.PublishedOnly {
		t.Error("dashboard feed must not filter to published videos")
	}
	if videos.lastFeed.Page != 1 || videos.lastFeed.Limit != 10 {
		t.Errorf("defaults = page %d limit %d", videos.lastFeed.Page, videos.lastFeed.Limit)
	}
}
