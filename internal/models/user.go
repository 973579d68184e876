package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`

	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON

	Name           string `bson:"name,omitempty" json:"name,omitempty"`
	Phone          string `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio            string `bson:"bio" json:"bio"`
	ProfilePicture string `bson:"profile_picture" json:"profilePicture"`

	// Collection holds references to spirits the user has added.
	// Semantically a set: adds go through $addToSet, removes through $pull.
	Collection []primitive.ObjectID `bson:"collection" json:"collection"`
}

// UserResponse is the sanitized user view returned by the API.
// The password hash and phone number are never included.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUserResponse maps a user document to its sanitized view.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
