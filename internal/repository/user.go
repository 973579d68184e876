// Package repository provides MongoDB persistence for users, spirits and posts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
)

var (
	// ErrNotFound is returned when a document does not exist or an id
	// does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an id is not a valid ObjectID hex.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateUsername is returned when the unique username index rejects a write.
	ErrDuplicateUsername = errors.New("username already taken")
)

// ProfileUpdate carries the updatable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name           *string
	Bio            *string
	ProfilePicture *string
	Phone          *string
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes on username and email.
// Called on startup from main after Mongo has connected. These indexes,
// not the pre-insert lookups, are what actually guarantee uniqueness
// under concurrent registrations.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
	}

	for _, m := range indexModels {
		if _, err := r.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new user document, setting timestamps and the generated id.
// Unique-index violations are mapped to ErrDuplicateEmail / ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Collection == nil {
		user.Collection = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// duplicateKeyError picks the conflict error matching the violated index.
func duplicateKeyError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	default:
		return fmt.Errorf("duplicate key: %w", err)
	}
}

// FindByID looks up a user by its hex id. A malformed id resolves to
// ErrNotFound, matching how the API treats stale identities.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the updated user.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.ProfilePicture != nil {
		set["profile_picture"] = *update.ProfilePicture
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// AddToCollection adds a spirit reference to the user's collection.
// $addToSet makes the operation an idempotent set-insert: adding a spirit
// already present is a no-op, and concurrent adds converge.
func (r *UserRepository) AddToCollection(ctx context.Context, userID, spiritID string) error {
	uid, sid, err := collectionIDs(userID, spiritID)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateByID(ctx, uid, bson.M{
		"$addToSet": bson.M{"collection": sid},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to add spirit to collection: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveFromCollection removes a spirit reference from the user's collection.
// Removing an absent spirit is a no-op success.
func (r *UserRepository) RemoveFromCollection(ctx context.Context, userID, spiritID string) error {
	uid, sid, err := collectionIDs(userID, spiritID)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateByID(ctx, uid, bson.M{
		"$pull": bson.M{"collection": sid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to remove spirit from collection: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func collectionIDs(userID, spiritID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrNotFound
	}
	sid, err := primitive.ObjectIDFromHex(spiritID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidID
	}
	return uid, sid, nil
}

// CollectionIDs returns the spirit references of a user's collection in
// stored order.
func (r *UserRepository) CollectionIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Collection, nil
}

// Delete removes a user document. No route exposes this; it exists for
// operational cleanup.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
