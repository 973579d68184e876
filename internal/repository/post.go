package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// EnsureIndexes configures the feed index. Called on startup from main.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_created_at"),
	})
	return err
}

// Create inserts a new post document.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Images == nil {
		post.Images = []string{}
	}
	post.Cheers = []models.Cheer{}
	post.Comments = []models.Comment{}

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// ListRecent returns the newest posts, newest first.
func (r *PostRepository) ListRecent(ctx context.Context, limit int64) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			continue
		}
		posts = append(posts, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}

// AddCheer records a cheer by userID on a post. The filter excludes posts the
// user has already cheered, so repeated cheers are a no-op success and at most
// one cheer per user ever exists.
func (r *PostRepository) AddCheer(ctx context.Context, postID string, userID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}

	filter := bson.M{
		"_id":            oid,
		"cheers.user_id": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"cheers": models.Cheer{UserID: userID, CreatedAt: time.Now().UTC()}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cheer post: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the post is missing or the user already cheered it.
		return r.exists(ctx, oid)
	}
	return nil
}

// RemoveCheer removes the user's cheer from a post. Removing an absent cheer
// is a no-op success.
func (r *PostRepository) RemoveCheer(ctx context.Context, postID string, userID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{
		"$pull": bson.M{"cheers": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to remove cheer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a comment to a post.
func (r *PostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}

	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()

	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to comment on post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) exists(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
