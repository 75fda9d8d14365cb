package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/pipeline"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LikeRepository interface {
	Exists(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (bool, error)
	Create(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (*domain.Like, error)
	Delete(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) error
	CountForVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error)
	CountForVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
	ListVideoLikes(ctx context.Context, actor primitive.ObjectID) ([]*domain.Like, error)
}

type likeRepository struct {
	db *mongo.Database
}

func NewLikeRepository(db *mongo.Database) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) coll() *mongo.Collection {
	return r.db.Collection(CollLikes)
}

func relationFilter(kind domain.LikeKind, target, actor primitive.ObjectID) bson.D {
	return bson.D{
		{Key: string(kind), Value: target},
		{Key: "likedBy", Value: actor},
	}
}

func (r *likeRepository) Exists(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (bool, error) {
	count, err := r.coll().CountDocuments(ctx, relationFilter(kind, target, actor))
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return count > 0, nil
}

func (r *likeRepository) Create(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (*domain.Like, error) {
	now := time.Now()
	like := &domain.Like{
		LikedBy:   actor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch kind {
	case domain.LikeKindVideo:
		like.Video = &target
	case domain.LikeKindComment:
		like.Comment = &target
	case domain.LikeKindTweet:
		like.Tweet = &target
	default:
		return nil, fmt.Errorf("unknown like kind %q", kind)
	}

	res, err := r.coll().InsertOne(ctx, like)
	if err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	like.ID = res.InsertedID.(primitive.ObjectID)
	return like, nil
}

func (r *likeRepository) Delete(ctx context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, relationFilter(kind, target, actor))
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountForVideos counts likes across a channel's videos for the stats
// aggregation.
func (r *likeRepository) CountForVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}

	p, err := pipeline.New().
		Match(bson.D{{Key: "video", Value: bson.D{{Key: "$in", Value: videoIDs}}}}).
		Count("totalLikes").
		Build()
	if err != nil {
		return 0, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalLikes int64 `bson:"totalLikes"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode like count: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].TotalLikes, nil
}

func (r *likeRepository) CountForVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	count, err := r.coll().CountDocuments(ctx, bson.D{{Key: "video", Value: videoID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count video likes: %w", err)
	}
	return count, nil
}

func (r *likeRepository) ListVideoLikes(ctx context.Context, actor primitive.ObjectID) ([]*domain.Like, error) {
	filter := bson.D{
		{Key: "likedBy", Value: actor},
		{Key: "video", Value: bson.D{{Key: "$ne", Value: nil}}},
	}

	cursor, err := r.coll().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer cursor.Close(ctx)

	var likes []*domain.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("failed to decode liked videos: %w", err)
	}

	return likes, nil
}
