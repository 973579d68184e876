package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/middleware"
	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

// PostStore defines the persistence operations required by PostHandler.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	ListRecent(ctx context.Context, limit int64) ([]models.Post, error)
	AddCheer(ctx context.Context, postID string, userID primitive.ObjectID) error
	RemoveCheer(ctx context.Context, postID string, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID string, comment models.Comment) error
}

type PostHandler struct {
	posts PostStore
}

func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Content  string   `json:"content"`
	SpiritID string   `json:"spiritId"`
	Images   []string `json:"images"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	post := &models.Post{
		UserID:  identity.ID,
		Content: strings.TrimSpace(req.Content),
		Images:  req.Images,
	}
	if req.SpiritID != "" {
		sid, err := primitive.ObjectIDFromHex(req.SpiritID)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid spirit ID")
			return
		}
		post.SpiritID = &sid
	}

	if err := h.posts.Create(r.Context(), post); err != nil {
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, post)
}

// List handles GET /api/posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.ParseInt(v, 10, 64)
	}

	posts, err := h.posts.ListRecent(r.Context(), limit)
	if err != nil {
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Cheer handles POST /api/posts/{postId}/cheers. Cheering twice is a no-op.
func (h *PostHandler) Cheer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.posts.AddCheer(r.Context(), chi.URLParam(r, "postId"), identity.ID); err != nil {
		h.writePostError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post cheered"})
}

// Uncheer handles DELETE /api/posts/{postId}/cheers.
func (h *PostHandler) Uncheer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.posts.RemoveCheer(r.Context(), chi.URLParam(r, "postId"), identity.ID); err != nil {
		h.writePostError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Cheer removed"})
}

// Comment handles POST /api/posts/{postId}/comments.
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Content is required")
		return
	}

	comment := models.Comment{
		UserID:  identity.ID,
		Content: strings.TrimSpace(req.Content),
	}

	if err := h.posts.AddComment(r.Context(), chi.URLParam(r, "postId"), comment); err != nil {
		h.writePostError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Comment added"})
}

func (h *PostHandler) writePostError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Post not found")
		return
	}
	utils.WriteServerError(w, err)
}
