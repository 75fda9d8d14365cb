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

type SubscriptionRepository interface {
	Exists(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	Create(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error)
	Delete(ctx context.Context, subscriber, channel primitive.ObjectID) error
	Subscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error)
	SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.SubscriberEntry, error)
	CountForChannel(ctx context.Context, channel primitive.ObjectID) (int64, error)
}

type subscriptionRepository struct {
	db *mongo.Database
}

func NewSubscriptionRepository(db *mongo.Database) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) coll() *mongo.Collection {
	return r.db.Collection(CollSubscriptions)
}

func subscriptionFilter(subscriber, channel primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	}
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	count, err := r.coll().CountDocuments(ctx, subscriptionFilter(subscriber, channel))
	if err != nil {
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}
	return count > 0, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error) {
	now := time.Now()
	sub := &domain.Subscription{
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := r.coll().InsertOne(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriber, channel primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, subscriptionFilter(subscriber, channel))
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// listJoined runs the shared match-lookup-unwind-project shape for
// both directions of the relation. The unwind drops rows whose
// counterpart user has been deleted.
func (r *subscriptionRepository) listJoined(ctx context.Context, matchField string, id primitive.ObjectID, joinField string) ([]domain.SubscriberEntry, error) {
	p, err := pipeline.New().
		Match(bson.D{{Key: matchField, Value: id}}).
		Lookup(CollUsers, joinField, "_id", "account").
		Unwind("account").
		Project(bson.D{
			{Key: "_id", Value: "$account._id"},
			{Key: "username", Value: "$account.username"},
			{Key: "fullname", Value: "$account.fullname"},
			{Key: "avatar", Value: "$account.avatar"},
			{Key: "coverImage", Value: "$account.coverImage"},
		}).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription list: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.SubscriberEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode subscription list: %w", err)
	}

	return entries, nil
}

func (r *subscriptionRepository) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	return r.listJoined(ctx, "channel", channel, "subscriber")
}

func (r *subscriptionRepository) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	return r.listJoined(ctx, "subscriber", subscriber, "channel")
}

func (r *subscriptionRepository) CountForChannel(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	p, err := pipeline.New().
		Match(bson.D{{Key: "channel", Value: channel}}).
		Count("totalSubscribers").
		Build()
	if err != nil {
		return 0, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalSubscribers int64 `bson:"totalSubscribers"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode subscriber count: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].TotalSubscribers, nil
}
