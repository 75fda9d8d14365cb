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

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type playlistRepository struct {
	db *mongo.Database
}

func NewPlaylistRepository(db *mongo.Database) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) coll() *mongo.Collection {
	return r.db.Collection(CollPlaylists)
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	res, err := r.coll().InsertOne(ctx, playlist)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	playlist.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *playlistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&playlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Playlist, error) {
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: owner}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	playlists := []*domain.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}

	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	playlist.UpdatedAt = time.Now()

	res, err := r.coll().ReplaceOne(ctx, bson.D{{Key: "_id", Value: playlist.ID}}, playlist)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
