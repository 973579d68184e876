package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
)

// SpiritStore defines the persistence operations required by SpiritService.
type SpiritStore interface {
	Create(ctx context.Context, spirit *models.Spirit) error
	FindByID(ctx context.Context, id string) (*models.Spirit, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error)
	List(ctx context.Context, category string, limit int64) ([]models.Spirit, error)
}

// Cache is the subset of the cache used for catalog reads.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

// SpiritService serves catalog reads through a read-through cache.
// Single spirits are cached by id; lists go straight to the store.
type SpiritService struct {
	store SpiritStore
	cache Cache
}

func NewSpiritService(store SpiritStore, cache Cache) *SpiritService {
	return &SpiritService{store: store, cache: cache}
}

// Create inserts a catalog entry and primes the cache with it.
func (s *SpiritService) Create(ctx context.Context, spirit *models.Spirit) error {
	if err := s.store.Create(ctx, spirit); err != nil {
		return err
	}
	s.cache.Set(ctx, CacheKey("spirit", spirit.ID.Hex()), spirit)
	return nil
}

// GetByID returns a single spirit, from cache when possible.
func (s *SpiritService) GetByID(ctx context.Context, id string) (*models.Spirit, error) {
	var cached models.Spirit
	if s.cache.Get(ctx, CacheKey("spirit", id), &cached) {
		return &cached, nil
	}

	spirit, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, CacheKey("spirit", id), spirit)
	return spirit, nil
}

// GetByIDs expands spirit references to full documents, preserving the order
// of ids and skipping references that no longer resolve. Cached entries are
// used where available; the rest are fetched in one batch.
func (s *SpiritService) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error) {
	found := make(map[primitive.ObjectID]models.Spirit, len(ids))
	var misses []primitive.ObjectID

	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		var cached models.Spirit
		if s.cache.Get(ctx, CacheKey("spirit", id.Hex()), &cached) {
			found[id] = cached
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) > 0 {
		fetched, err := s.store.FindByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, sp := range fetched {
			found[sp.ID] = sp
			s.cache.Set(ctx, CacheKey("spirit", sp.ID.Hex()), sp)
		}
	}

	spirits := make([]models.Spirit, 0, len(ids))
	for _, id := range ids {
		if sp, ok := found[id]; ok {
			spirits = append(spirits, sp)
		}
	}
	return spirits, nil
}

// List returns catalog entries, optionally filtered by category.
func (s *SpiritService) List(ctx context.Context, category string, limit int64) ([]models.Spirit, error) {
	return s.store.List(ctx, category, limit)
}
