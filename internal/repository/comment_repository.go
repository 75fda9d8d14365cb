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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, content string) (*domain.Comment, error)
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
	ListByVideo(ctx context.Context, video primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error)
}

type commentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) coll() *mongo.Collection {
	return r.db.Collection(CollComments)
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	res, err := r.coll().InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

// UpdateOwned updates content only when the comment belongs to owner;
// a comment owned by someone else behaves as not found.
func (r *commentRepository) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, content string) (*domain.Comment, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	var comment domain.Comment
	err := r.coll().FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "owner", Value: owner},
	})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByVideo returns a video's comment thread joined with each
// author, newest first.
func (r *commentRepository) ListByVideo(ctx context.Context, video primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error) {
	ownerProjection := mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullname", Value: 1},
			{Key: "avatar", Value: 1},
		}}},
	}

	p, err := pipeline.New().
		Match(bson.D{{Key: "video", Value: video}}).
		LookupPipeline(CollUsers, "owner", "_id", "owner", ownerProjection).
		Unwind("owner").
		Project(bson.D{
			{Key: "content", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "owner", Value: 1},
		}).
		Sort("createdAt", -1).
		Skip((page - 1) * limit).
		Limit(limit).
		Build()
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll().Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []domain.CommentWithOwner{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}
