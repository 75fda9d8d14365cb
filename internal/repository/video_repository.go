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

// VideoFeed is the validated form of a feed query, built by the video
// service after id validation and default resolution.
type VideoFeed struct {
	Query         string
	Owner         *primitive.ObjectID
	PublishedOnly bool
	SortBy        string
	SortOrder     int
	Page          int64
	Limit         int64
}

// OwnerVideoStats is the grouped aggregate over a channel's videos.
type OwnerVideoStats struct {
	TotalViews  int64                `bson:"totalVideoViews"`
	TotalVideos int64                `bson:"totalVideos"`
	VideoIDs    []primitive.ObjectID `bson:"videos"`
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Feed(ctx context.Context, feed VideoFeed) (*domain.VideoPage, error)
	DetailWithOwner(ctx context.Context, id primitive.ObjectID) (*domain.VideoDetail, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	OwnerStats(ctx context.Context, owner primitive.ObjectID) (*OwnerVideoStats, error)
}

type videoRepository struct {
	db *mongo.Database
}

func NewVideoRepository(db *mongo.Database) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) coll() *mongo.Collection {
	return r.db.Collection(CollVideos)
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	res, err := r.coll().InsertOne(ctx, video)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	video.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *videoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	video.UpdatedAt = time.Now()

	res, err := r.coll().ReplaceOne(ctx, bson.D{{Key: "_id", Value: video.ID}}, video)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Feed applies the conditional stages in fixed order: title match,
// owner match, publish-status match, sort, channel join, projection,
// then a facet computing the page slice and total count in one pass.
func (r *videoRepository) Feed(ctx context.Context, feed VideoFeed) (*domain.VideoPage, error) {
	b := pipeline.New()

	if feed.Query != "" {
		b.MatchRegex("title", feed.Query)
	}
	if feed.Owner != nil {
		b.Match(bson.D{{Key: "owner", Value: *feed.Owner}})
	}
	if feed.PublishedOnly {
		b.Match(bson.D{{Key: "isPublished", Value: true}})
	}
	if feed.SortBy != "" {
		b.Sort(feed.SortBy, feed.SortOrder)
	}

	channelProjection := mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
		}}},
	}

	p, err := b.
		LookupPipeline(CollUsers, "owner", "_id", "channel", channelProjection).
		Unwind("channel").
		Project(bson.D{
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "videoUrl", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "viewCount", Value: 1},
			{Key: "isPublished", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "channel", Value: 1},
		}).
		FacetPage("items", "totalCount", feed.Page, feed.Limit).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video feed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Items      []domain.FeedVideo `bson:"items"`
		TotalCount []struct {
			TotalCount int64 `bson:"totalCount"`
		} `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode video feed: %w", err)
	}

	page := &domain.VideoPage{Items: []domain.FeedVideo{}}
	if len(results) == 0 {
		return page, nil
	}

	page.Items = results[0].Items
	if page.Items == nil {
		page.Items = []domain.FeedVideo{}
	}
	// The count branch is empty when nothing matched; guard before
	// dereferencing.
	if len(results[0].TotalCount) > 0 {
		page.TotalCount = results[0].TotalCount[0].TotalCount
	}
	page.TotalPages = pipeline.TotalPages(page.TotalCount, feed.Limit)

	return page, nil
}

func (r *videoRepository) DetailWithOwner(ctx context.Context, id primitive.ObjectID) (*domain.VideoDetail, error) {
	p, err := pipeline.New().
		Match(bson.D{{Key: "_id", Value: id}}).
		Lookup(CollUsers, "owner", "_id", "channel").
		Unwind("channel").
		Project(bson.D{
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "videoUrl", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "viewCount", Value: 1},
			{Key: "isPublished", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "channel", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "username", Value: 1},
				{Key: "avatar", Value: 1},
			}},
		}).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video detail: %w", err)
	}
	defer cursor.Close(ctx)

	var details []domain.VideoDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode video detail: %w", err)
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}

	return &details[0], nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll().UpdateByID(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "viewCount", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnerStats groups the channel's videos into total views, video count
// and the list of video ids. A channel with no videos yields an empty
// result set, not a zeroed group; callers must treat that as zero.
func (r *videoRepository) OwnerStats(ctx context.Context, owner primitive.ObjectID) (*OwnerVideoStats, error) {
	p, err := pipeline.New().
		Match(bson.D{{Key: "owner", Value: owner}}).
		Group(bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideoViews", Value: bson.D{{Key: "$sum", Value: "$viewCount"}}},
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "videos", Value: bson.D{{Key: "$push", Value: "$_id"}}},
		}).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate video stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []OwnerVideoStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode video stats: %w", err)
	}
	if len(stats) == 0 {
		return &OwnerVideoStats{}, nil
	}

	return &stats[0], nil
}
