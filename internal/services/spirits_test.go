package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
)

type fakeSpiritStore struct {
	spirits     map[primitive.ObjectID]models.Spirit
	batchCalls  int
	singleCalls int
}

func (f *fakeSpiritStore) Create(ctx context.Context, spirit *models.Spirit) error {
	spirit.ID = primitive.NewObjectID()
	f.spirits[spirit.ID] = *spirit
	return nil
}

func (f *fakeSpiritStore) FindByID(ctx context.Context, id string) (*models.Spirit, error) {
	f.singleCalls++
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if s, ok := f.spirits[oid]; ok {
		return &s, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSpiritStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error) {
	f.batchCalls++
	var out []models.Spirit
	for _, id := range ids {
		if s, ok := f.spirits[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpiritStore) List(ctx context.Context, category string, limit int64) ([]models.Spirit, error) {
	var out []models.Spirit
	for _, s := range f.spirits {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeCache stores marshaled spirits keyed by cache key.
type fakeCache struct {
	entries map[string]models.Spirit
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) bool {
	s, ok := f.entries[key]
	if !ok {
		return false
	}
	if d, ok := dest.(*models.Spirit); ok {
		*d = s
		return true
	}
	return false
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}) {
	switch v := value.(type) {
	case *models.Spirit:
		f.entries[key] = *v
	case models.Spirit:
		f.entries[key] = v
	}
}

func newSpiritFixture() (*SpiritService, *fakeSpiritStore, *fakeCache) {
	store := &fakeSpiritStore{spirits: map[primitive.ObjectID]models.Spirit{}}
	cache := &fakeCache{entries: map[string]models.Spirit{}}
	return NewSpiritService(store, cache), store, cache
}

func addSpirit(store *fakeSpiritStore, name string) models.Spirit {
	s := models.Spirit{ID: primitive.NewObjectID(), Name: name, Category: models.CategoryWhiskey}
	store.spirits[s.ID] = s
	return s
}

func TestSpiritService_GetByID_CachesResult(t *testing.T) {
	svc, store, cache := newSpiritFixture()
	s := addSpirit(store, "Lagavulin 16")

	got, err := svc.GetByID(context.Background(), s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Lagavulin 16", got.Name)
	assert.Equal(t, 1, store.singleCalls)
	assert.Len(t, cache.entries, 1)

	// Second read is served from cache
	got, err = svc.GetByID(context.Background(), s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Lagavulin 16", got.Name)
	assert.Equal(t, 1, store.singleCalls)
}

func TestSpiritService_GetByIDs_PreservesOrderSkipsMissing(t *testing.T) {
	svc, store, _ := newSpiritFixture()
	a := addSpirit(store, "A")
	b := addSpirit(store, "B")
	dangling := primitive.NewObjectID()

	spirits, err := svc.GetByIDs(context.Background(), []primitive.ObjectID{b.ID, dangling, a.ID})
	require.NoError(t, err)

	require.Len(t, spirits, 2)
	assert.Equal(t, "B", spirits[0].Name)
	assert.Equal(t, "A", spirits[1].Name)
}

func TestSpiritService_GetByIDs_UsesCachedEntries(t *testing.T) {
	svc, store, _ := newSpiritFixture()
	a := addSpirit(store, "A")
	b := addSpirit(store, "B")

	// Prime the cache with one of the two
	_, err := svc.GetByID(context.Background(), a.ID.Hex())
	require.NoError(t, err)

	spirits, err := svc.GetByIDs(context.Background(), []primitive.ObjectID{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, spirits, 2)

	// Only the miss went to the store batch
	assert.Equal(t, 1, store.batchCalls)
}

func TestSpiritService_GetByIDs_Empty(t *testing.T) {
	svc, store, _ := newSpiritFixture()

	spirits, err := svc.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, spirits)
	assert.Equal(t, 0, store.batchCalls)
}
