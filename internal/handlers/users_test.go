package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/middleware"
	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
)

// fakeUserStore implements UserStore, recording the calls it receives.
type fakeUserStore struct {
	user       *models.User
	findErr    error
	updateErr  error
	lastUpdate repository.ProfileUpdate
	added      []string
	removed    []string
	mutateErr  error
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id string, update repository.ProfileUpdate) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastUpdate = update
	if update.Bio != nil {
		f.user.Bio = *update.Bio
	}
	if update.Name != nil {
		f.user.Name = *update.Name
	}
	return f.user, nil
}

func (f *fakeUserStore) AddToCollection(ctx context.Context, userID, spiritID string) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.added = append(f.added, spiritID)
	return nil
}

func (f *fakeUserStore) RemoveFromCollection(ctx context.Context, userID, spiritID string) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.removed = append(f.removed, spiritID)
	return nil
}

func (f *fakeUserStore) CollectionIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user.Collection, nil
}

type fakeSpiritFinder struct {
	spirits []models.Spirit
	err     error
}

func (f *fakeSpiritFinder) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error) {
	return f.spirits, f.err
}

func testUser() *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		Username:       "ann",
		Email:          "ann@x.com",
		Bio:            "old bio",
		Name:           "Ann",
		ProfilePicture: "https://example.com/a.png",
		Collection:     []primitive.ObjectID{primitive.NewObjectID()},
	}
}

// userRouter mounts the handler behind the real routes so URL params resolve.
func userRouter(h *UserHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/users/profile", h.GetProfile)
	r.Put("/api/users/profile", h.UpdateProfile)
	r.Get("/api/users/collection", h.GetCollection)
	r.Post("/api/users/collection", h.AddToCollection)
	r.Delete("/api/users/collection/{spiritId}", h.RemoveFromCollection)
	return r
}

func authedRequest(method, target string, body io.Reader, user *models.User) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestUserHandler_GetProfile(t *testing.T) {
	user := testUser()
	h := NewUserHandler(&fakeUserStore{user: user}, &fakeSpiritFinder{})

	rec := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rec, authedRequest("GET", "/api/users/profile", nil, user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ann"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_GetProfile_Gone(t *testing.T) {
	user := testUser()
	h := NewUserHandler(&fakeUserStore{findErr: repository.ErrNotFound}, &fakeSpiritFinder{})

	rec := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rec, authedRequest("GET", "/api/users/profile", nil, user))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestUserHandler_GetProfile_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&fakeUserStore{}, &fakeSpiritFinder{})

	rec := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/users/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_UpdateProfile_Partial(t *testing.T) {
	user := testUser()
	store := &fakeUserStore{user: user}
	h := NewUserHandler(store, &fakeSpiritFinder{})

	rec := httptest.NewRecorder()
	req := authedRequest("PUT", "/api/users/profile", bytes.NewBufferString(`{"bio":"new bio"}`), user)
	userRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Only bio was supplied; everything else must be left unchanged
	require.NotNil(t, store.lastUpdate.Bio)
	assert.Equal(t, "new bio", *store.lastUpdate.Bio)
	assert.Nil(t, store.lastUpdate.Name)
	assert.Nil(t, store.lastUpdate.Phone)
	assert.Nil(t, store.lastUpdate.ProfilePicture)
	assert.Contains(t, rec.Body.String(), `"bio":"new bio"`)
	assert.Contains(t, rec.Body.String(), `"name":"Ann"`)
}

func TestUserHandler_AddToCollection(t *testing.T) {
	user := testUser()
	spiritID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		body           string
		store          *fakeUserStore
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "missing spirit id",
			body:           `{}`,
			store:          &fakeUserStore{user: user},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Spirit ID is required",
		},
		{
			name:           "invalid spirit id",
			body:           `{"spiritId":"nope"}`,
			store:          &fakeUserStore{user: user, mutateErr: repository.ErrInvalidID},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Invalid spirit ID",
		},
		{
			name:           "user gone",
			body:           `{"spiritId":"` + spiritID + `"}`,
			store:          &fakeUserStore{user: user, mutateErr: repository.ErrNotFound},
			expectedCode:   http.StatusNotFound,
			expectedSubstr: "User not found",
		},
		{
			name:           "success",
			body:           `{"spiritId":"` + spiritID + `"}`,
			store:          &fakeUserStore{user: user},
			expectedCode:   http.StatusOK,
			expectedSubstr: "Spirit added to collection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(tt.store, &fakeSpiritFinder{})

			rec := httptest.NewRecorder()
			req := authedRequest("POST", "/api/users/collection", bytes.NewBufferString(tt.body), user)
			userRouter(h).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedSubstr)
		})
	}
}

func TestUserHandler_RemoveFromCollection(t *testing.T) {
	user := testUser()
	store := &fakeUserStore{user: user}
	h := NewUserHandler(store, &fakeSpiritFinder{})
	spiritID := primitive.NewObjectID().Hex()

	rec := httptest.NewRecorder()
	req := authedRequest("DELETE", "/api/users/collection/"+spiritID, nil, user)
	userRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Spirit removed from collection")
	assert.Equal(t, []string{spiritID}, store.removed)
}

func TestUserHandler_GetCollection(t *testing.T) {
	user := testUser()
	spirits := []models.Spirit{
		{ID: user.Collection[0], Name: "Lagavulin 16", Category: models.CategoryScotch},
	}
	h := NewUserHandler(&fakeUserStore{user: user}, &fakeSpiritFinder{spirits: spirits})

	rec := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rec, authedRequest("GET", "/api/users/collection", nil, user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"collection"`)
	assert.Contains(t, rec.Body.String(), "Lagavulin 16")
}
