package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type TweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type TweetList struct {
	Tweets      []*Tweet `json:"tweets"`
	TotalTweets int64    `json:"totalTweets"`
}
