package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Duration    float64            `bson:"duration" json:"duration"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type PublishVideoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1,max=5000"`
}

type UpdateVideoRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,min=1,max=5000"`
}

// SortOrder is the direction of a feed sort stage.
type SortOrder int

const (
	SortAscending  SortOrder = 1
	SortDescending SortOrder = -1
)

// VideoFeedOptions drives the conditional stages of the feed pipeline.
// Zero values leave the corresponding stage out.
type VideoFeedOptions struct {
	Query         string
	OwnerID       string
	PublishedOnly bool
	SortBy        string
	SortOrder     SortOrder
	Page          int64
	Limit         int64
}

// FeedVideo is a feed item joined with its channel.
type FeedVideo struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Duration    float64            `bson:"duration" json:"duration"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Channel     FeedChannel        `bson:"channel" json:"channel"`
}

type FeedChannel struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	CoverImage string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
}

// VideoPage is the reshaped output of a paginated video pipeline.
type VideoPage struct {
	Items      []FeedVideo `json:"items"`
	TotalCount int64       `json:"totalCount"`
	TotalPages int64       `json:"totalPages"`
}

// VideoDetail is a single video joined with its owning channel.
type VideoDetail struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Duration    float64            `bson:"duration" json:"duration"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Channel     VideoOwner         `bson:"channel" json:"channel"`
}
