package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
)

type SpiritRepository struct {
	col *mongo.Collection
}

func NewSpiritRepository(db *mongo.Database) *SpiritRepository {
	return &SpiritRepository{col: db.Collection("spirits")}
}

// Create inserts a new catalog entry.
func (r *SpiritRepository) Create(ctx context.Context, spirit *models.Spirit) error {
	now := time.Now().UTC()
	spirit.CreatedAt = now
	spirit.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, spirit)
	if err != nil {
		return fmt.Errorf("failed to create spirit: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		spirit.ID = oid
	}
	return nil
}

// FindByID looks up a spirit by its hex id.
func (r *SpiritRepository) FindByID(ctx context.Context, id string) (*models.Spirit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var spirit models.Spirit
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&spirit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find spirit: %w", err)
	}
	return &spirit, nil
}

// FindByIDs fetches the given spirits in one query and returns them in the
// order of ids. Ids that no longer resolve are skipped.
func (r *SpiritRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error) {
	if len(ids) == 0 {
		return []models.Spirit{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find spirits: %w", err)
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Spirit, len(ids))
	for cur.Next(ctx) {
		var s models.Spirit
		if err := cur.Decode(&s); err != nil {
			continue
		}
		byID[s.ID] = s
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spirits: %w", err)
	}

	spirits := make([]models.Spirit, 0, len(byID))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			spirits = append(spirits, s)
		}
	}
	return spirits, nil
}

// List returns catalog entries, newest first. An empty category means no filter.
func (r *SpiritRepository) List(ctx context.Context, category string, limit int64) ([]models.Spirit, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list spirits: %w", err)
	}
	defer cur.Close(ctx)

	spirits := []models.Spirit{}
	for cur.Next(ctx) {
		var s models.Spirit
		if err := cur.Decode(&s); err != nil {
			continue
		}
		spirits = append(spirits, s)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spirits: %w", err)
	}
	return spirits, nil
}
