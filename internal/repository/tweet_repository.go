package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anikettiwarime/VideoTube/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Tweet, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, content string) (*domain.Tweet, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
}

type tweetRepository struct {
	db *mongo.Database
}

func NewTweetRepository(db *mongo.Database) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) coll() *mongo.Collection {
	return r.db.Collection(CollTweets)
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	res, err := r.coll().InsertOne(ctx, tweet)
	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	tweet.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tweetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tweet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tweet: %w", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Tweet, error) {
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: owner}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	tweets := []*domain.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode tweets: %w", err)
	}

	return tweets, nil
}

func (r *tweetRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, content string) (*domain.Tweet, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	var tweet domain.Tweet
	err := r.coll().FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&tweet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	return &tweet, nil
}

func (r *tweetRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
	})
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
