package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a post document.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Cheer is an upvote on a post. At most one per user per post.
type Cheer struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"userId"`
	SpiritID  *primitive.ObjectID `bson:"spirit_id,omitempty" json:"spiritId,omitempty"`
	Content   string              `bson:"content" json:"content"`
	Images    []string            `bson:"images" json:"images"`
	Cheers    []Cheer             `bson:"cheers" json:"cheers"`
	Comments  []Comment           `bson:"comments" json:"comments"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
