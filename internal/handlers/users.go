package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spiritsvault/spirits-vault-backend/internal/middleware"
	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

// UserStore defines the persistence operations required by UserHandler.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update repository.ProfileUpdate) (*models.User, error)
	AddToCollection(ctx context.Context, userID, spiritID string) error
	RemoveFromCollection(ctx context.Context, userID, spiritID string) error
	CollectionIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error)
}

// SpiritFinder expands spirit references to full catalog entries.
type SpiritFinder interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Spirit, error)
}

type UserHandler struct {
	users   UserStore
	spirits SpiritFinder
}

func NewUserHandler(users UserStore, spirits SpiritFinder) *UserHandler {
	return &UserHandler{users: users, spirits: spirits}
}

// updateProfileRequest uses pointers so absent fields are left unchanged.
type updateProfileRequest struct {
	Name           *string `json:"name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	Phone          *string `json:"phone"`
}

type addToCollectionRequest struct {
	SpiritID string `json:"spiritId"`
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.users.FindByID(r.Context(), identity.ID.Hex())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.NewUserResponse(user))
}

// UpdateProfile handles PUT /api/users/profile. Only the supplied fields change.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), identity.ID.Hex(), repository.ProfileUpdate{
		Name:           req.Name,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Phone:          req.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.NewUserResponse(user))
}

// GetCollection handles GET /api/users/collection. Spirit references are
// expanded to full catalog entries, preserving the stored order.
func (h *UserHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ids, err := h.users.CollectionIDs(r.Context(), identity.ID.Hex())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteServerError(w, err)
		return
	}

	collection, err := h.spirits.GetByIDs(r.Context(), ids)
	if err != nil {
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"collection": collection})
}

// AddToCollection handles POST /api/users/collection.
func (h *UserHandler) AddToCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req addToCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SpiritID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Spirit ID is required")
		return
	}

	if err := h.users.AddToCollection(r.Context(), identity.ID.Hex(), req.SpiritID); err != nil {
		h.writeCollectionError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Spirit added to collection"})
}

// RemoveFromCollection handles DELETE /api/users/collection/{spiritId}.
func (h *UserHandler) RemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	spiritID := chi.URLParam(r, "spiritId")
	if spiritID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Spirit ID is required")
		return
	}

	if err := h.users.RemoveFromCollection(r.Context(), identity.ID.Hex(), spiritID); err != nil {
		h.writeCollectionError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Spirit removed from collection"})
}

func (h *UserHandler) writeCollectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid spirit ID")
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "User not found")
	default:
		utils.WriteServerError(w, err)
	}
}
