package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
)

type fakePostStore struct {
	posts      []models.Post
	createErr  error
	cheerErr   error
	commentErr error
	cheered    []string
	uncheered  []string
	comments   []models.Comment
}

func (f *fakePostStore) Create(ctx context.Context, post *models.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	post.ID = primitive.NewObjectID()
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostStore) ListRecent(ctx context.Context, limit int64) ([]models.Post, error) {
	return f.posts, nil
}

func (f *fakePostStore) AddCheer(ctx context.Context, postID string, userID primitive.ObjectID) error {
	if f.cheerErr != nil {
		return f.cheerErr
	}
	f.cheered = append(f.cheered, postID)
	return nil
}

func (f *fakePostStore) RemoveCheer(ctx context.Context, postID string, userID primitive.ObjectID) error {
	if f.cheerErr != nil {
		return f.cheerErr
	}
	f.uncheered = append(f.uncheered, postID)
	return nil
}

func (f *fakePostStore) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	if f.commentErr != nil {
		return f.commentErr
	}
	f.comments = append(f.comments, comment)
	return nil
}

func postRouter(h *PostHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/posts", h.List)
	r.Post("/api/posts", h.Create)
	r.Post("/api/posts/{postId}/cheers", h.Cheer)
	r.Delete("/api/posts/{postId}/cheers", h.Uncheer)
	r.Post("/api/posts/{postId}/comments", h.Comment)
	return r
}

func TestPostHandler_Create(t *testing.T) {
	user := testUser()
	spiritID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		body           string
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "missing content",
			body:           `{"content":"  "}`,
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Content is required",
		},
		{
			name:           "invalid spirit reference",
			body:           `{"content":"great dram","spiritId":"nope"}`,
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Invalid spirit ID",
		},
		{
			name:           "success",
			body:           `{"content":"great dram","spiritId":"` + spiritID + `"}`,
			expectedCode:   http.StatusCreated,
			expectedSubstr: "great dram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPostHandler(&fakePostStore{})

			rec := httptest.NewRecorder()
			req := authedRequest("POST", "/api/posts", bytes.NewBufferString(tt.body), user)
			postRouter(h).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedSubstr)
		})
	}
}

func TestPostHandler_Cheer(t *testing.T) {
	user := testUser()
	postID := primitive.NewObjectID().Hex()
	store := &fakePostStore{}
	h := NewPostHandler(store)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/api/posts/"+postID+"/cheers", nil, user)
	postRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{postID}, store.cheered)
}

func TestPostHandler_Cheer_PostMissing(t *testing.T) {
	user := testUser()
	h := NewPostHandler(&fakePostStore{cheerErr: repository.ErrNotFound})

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/api/posts/"+primitive.NewObjectID().Hex()+"/cheers", nil, user)
	postRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found")
}

func TestPostHandler_Comment(t *testing.T) {
	user := testUser()
	postID := primitive.NewObjectID().Hex()
	store := &fakePostStore{}
	h := NewPostHandler(store)

	rec := httptest.NewRecorder()
	req := authedRequest("POST", "/api/posts/"+postID+"/comments",
		bytes.NewBufferString(`{"content":"looks tasty"}`), user)
	postRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.comments, 1)
	assert.Equal(t, "looks tasty", store.comments[0].Content)
	assert.Equal(t, user.ID, store.comments[0].UserID)
}

func TestPostHandler_List(t *testing.T) {
	store := &fakePostStore{posts: []models.Post{
		{ID: primitive.NewObjectID(), Content: "first dram"},
	}}
	h := NewPostHandler(store)

	rec := httptest.NewRecorder()
	postRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/posts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "first dram")
}
