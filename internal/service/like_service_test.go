package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
)

func TestLikeService_ToggleRoundTrip(t *testing.T) {
	likes := newMockLikeRepository()
	videos := newMockVideoRepository()
	actor := primitive.NewObjectID()
	video := seedVideo(videos, primitive.NewObjectID(), "likeable", 0, true, time.Now())
	svc := NewLikeService(likes, videos, newMockCommentRepository(), newMockTweetRepository())

	added, err := svc.Toggle(context.Background(), domain.LikeKindVideo, video.ID.Hex(), actor.Hex())
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if added.State != domain.ToggleAdded {
		t.Fatalf("state = %q, want %q", added.State, domain.ToggleAdded)
	}
	if added.Record == nil {
		t.Error("added toggle should carry the like record")
	}
	if count, _ := likes.CountForVideo(context.Background(), video.ID); count != 1 {
		t.Errorf("like count = %d, want 1", count)
	}

	removed, err := svc.Toggle(context.Background(), domain.LikeKindVideo, video.ID.Hex(), actor.Hex())
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if removed.State != domain.ToggleRemoved {
		t.Fatalf("state = %q, want %q", removed.State, domain.ToggleRemoved)
	}
	if count, _ := likes.CountForVideo(context.Background(), video.ID); count != 0 {
		t.Errorf("like count after round trip = %d, want 0", count)
	}
}

func TestLikeService_ToggleMissingTarget(t *testing.T) {
	svc := NewLikeService(newMockLikeRepository(), newMockVideoRepository(), newMockCommentRepository(), newMockTweetRepository())
	actor := primitive.NewObjectID()

	tests := []struct {
		name string
		kind domain.LikeKind
	}{
		{"video", domain.LikeKindVideo},
		{"comment", domain.LikeKindComment},
		{"tweet", domain.LikeKindTweet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Toggle(context.Background(), tt.kind, primitive.NewObjectID().Hex(), actor.Hex())
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Toggle() error = %v, want %v", err, ErrNotFound)
			}
		})
	}

	if _, err := svc.Toggle(context.Background(), domain.LikeKind("channel"), primitive.NewObjectID().Hex(), actor.Hex()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown kind error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestLikeService_LikedVideos(t *testing.T) {
	likes := newMockLikeRepository()
	videos := newMockVideoRepository()
	tweets := newMockTweetRepository()
	actor := primitive.NewObjectID()
	svc := NewLikeService(likes, videos, newMockCommentRepository(), tweets)

	video := seedVideo(videos, primitive.NewObjectID(), "liked", 0, true, time.Now())
	tweet := &domain.Tweet{Content: "hi", Owner: actor}
	_ = tweets.Create(context.Background(), tweet)

	if _, err := svc.Toggle(context.Background(), domain.LikeKindVideo, video.ID.Hex(), actor.Hex()); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(context.Background(), domain.LikeKindTweet, tweet.ID.Hex(), actor.Hex()); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	liked, err := svc.LikedVideos(context.Background(), actor.Hex())
	if err != nil {
		t.Fatalf("LikedVideos() error = %v", err)
	}
	if len(liked) != 1 {
		t.Fatalf("liked videos = %d, want 1 (tweet like excluded)", len(liked))
	}
	if liked[0].Video == nil || *liked[0].Video != video.ID {
		t.Errorf("liked video = %v, want %v", liked[0].Video, video.ID)
	}
}
