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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, id primitive.ObjectID) ([]domain.WatchHistoryEntry, error)
	RecordWatch(ctx context.Context, userID, videoID primitive.ObjectID) error
}

type userRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) coll() *mongo.Collection {
	return r.db.Collection(CollUsers)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	res, err := r.coll().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var user domain.User
	err := r.coll().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll().CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}}

	count, err := r.coll().CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	res, err := r.coll().ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRefreshToken overwrites the stored refresh token. An empty token
// clears it (logout).
func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	var update bson.D
	if token == "" {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}}}
	} else {
		update = bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	}

	res, err := r.coll().UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	res, err := r.coll().UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hashedPassword},
		{Key: "updatedAt", Value: time.Now()},
	}}})
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ChannelProfile joins the user with subscriptions in both directions
// and derives subscriber counts plus whether the viewer subscribes.
// A zero viewer id yields isSubscribed=false.
func (r *userRepository) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error) {
	p, err := pipeline.New().
		Match(bson.D{{Key: "username", Value: username}}).
		Lookup(CollSubscriptions, "_id", "channel", "subscribers").
		Lookup(CollSubscriptions, "_id", "subscriber", "subscribedTo").
		AddFields(bson.D{
			{Key: "subscriberCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "subscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: bson.D{{Key: "$in", Value: bson.A{viewer, "$subscribers.subscriber"}}}},
		}).
		Project(bson.D{
			{Key: "username", Value: 1},
			{Key: "fullname", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscriberCount", Value: 1},
			{Key: "subscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
		}).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel profile: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []domain.ChannelProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode channel profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}

	return &profiles[0], nil
}

// WatchHistory joins each stored video id to its document and each
// video to its owner, preserving the stored most-recent-first order.
func (r *userRepository) WatchHistory(ctx context.Context, id primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	ownerProjection := mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullname", Value: 1},
			{Key: "avatar", Value: 1},
		}}},
	}

	videoJoin := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CollUsers},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: ownerProjection},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: "$owner"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "viewCount", Value: 1},
			{Key: "owner", Value: 1},
		}}},
	}

	p, err := pipeline.New().
		Match(bson.D{{Key: "_id", Value: id}}).
		LookupPipeline(CollVideos, "watchHistory", "_id", "watchHistory", videoJoin).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		WatchHistory []domain.WatchHistoryEntry `bson:"watchHistory"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode watch history: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// $lookup does not guarantee input order; reorder to the stored list.
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]domain.WatchHistoryEntry, len(results[0].WatchHistory))
	for _, entry := range results[0].WatchHistory {
		byID[entry.ID] = entry
	}

	ordered := make([]domain.WatchHistoryEntry, 0, len(byID))
	for _, videoID := range user.WatchHistory {
		if entry, ok := byID[videoID]; ok {
			ordered = append(ordered, entry)
		}
	}

	return ordered, nil
}

// RecordWatch moves the video to the front of the watch history,
// removing any earlier occurrence first.
func (r *userRepository) RecordWatch(ctx context.Context, userID, videoID primitive.ObjectID) error {
	if _, err := r.coll().UpdateByID(ctx, userID, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "watchHistory", Value: videoID}}},
	}); err != nil {
		return fmt.Errorf("failed to dedupe watch history: %w", err)
	}

	res, err := r.coll().UpdateByID(ctx, userID, bson.D{
		{Key: "$push", Value: bson.D{{Key: "watchHistory", Value: bson.D{
			{Key: "$each", Value: bson.A{videoID}},
			{Key: "$position", Value: 0},
		}}}},
	})
	if err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
