package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription records that Subscriber follows Channel. Both sides are
// user ids.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubscriberEntry is one row of a channel's subscriber list, joined
// with the subscriber's public profile.
type SubscriberEntry struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Fullname   string             `bson:"fullname" json:"fullname"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	CoverImage string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
}

type SubscriberList struct {
	Subscribers []SubscriberEntry `json:"subscribers"`
	TotalCount  int64             `json:"totalCount"`
}

type SubscribedChannelList struct {
	Channels   []SubscriberEntry `json:"channels"`
	TotalCount int64             `json:"totalCount"`
}
