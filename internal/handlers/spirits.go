package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

// SpiritCatalog is the catalog service used by SpiritHandler.
type SpiritCatalog interface {
	Create(ctx context.Context, spirit *models.Spirit) error
	GetByID(ctx context.Context, id string) (*models.Spirit, error)
	List(ctx context.Context, category string, limit int64) ([]models.Spirit, error)
}

type SpiritHandler struct {
	spirits SpiritCatalog
}

func NewSpiritHandler(spirits SpiritCatalog) *SpiritHandler {
	return &SpiritHandler{spirits: spirits}
}

type createSpiritRequest struct {
	Name            string                 `json:"name"`
	Brand           string                 `json:"brand"`
	CountryOfOrigin string                 `json:"countryOfOrigin"`
	Category        string                 `json:"category"`
	PhotoURL        string                 `json:"photoUrl"`
	ABV             float64                `json:"abv"`
	Description     string                 `json:"description"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// List handles GET /api/spirits.
func (h *SpiritHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidSpiritCategory(category) {
		utils.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.ParseInt(v, 10, 64)
	}

	spirits, err := h.spirits.List(r.Context(), category, limit)
	if err != nil {
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"spirits": spirits})
}

// Get handles GET /api/spirits/{spiritId}.
func (h *SpiritHandler) Get(w http.ResponseWriter, r *http.Request) {
	spirit, err := h.spirits.GetByID(r.Context(), chi.URLParam(r, "spiritId"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			utils.WriteError(w, http.StatusBadRequest, "Invalid spirit ID")
		case errors.Is(err, repository.ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Spirit not found")
		default:
			utils.WriteServerError(w, err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, spirit)
}

// Create handles POST /api/spirits.
func (h *SpiritHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSpiritRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Brand == "" || req.CountryOfOrigin == "" || req.Category == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name, brand, country of origin and category are required")
		return
	}
	if !models.ValidSpiritCategory(req.Category) {
		utils.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	if req.ABV < 0 || req.ABV > 100 {
		utils.WriteError(w, http.StatusBadRequest, "ABV must be between 0 and 100")
		return
	}

	spirit := &models.Spirit{
		Name:            req.Name,
		Brand:           req.Brand,
		CountryOfOrigin: req.CountryOfOrigin,
		Category:        req.Category,
		PhotoURL:        req.PhotoURL,
		ABV:             req.ABV,
		Description:     req.Description,
		Metadata:        req.Metadata,
	}

	if err := h.spirits.Create(r.Context(), spirit); err != nil {
		utils.WriteServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, spirit)
}
