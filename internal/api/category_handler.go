package api

import (
	"net/http"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/store"
)

// CategoryHandler serves the vocabulary catalog. Categories are read-only
// through the API; writes happen via import tooling.
type CategoryHandler struct {
	categoryStore store.CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryStore store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categoryStore: categoryStore}
}

// List handles GET /categories, returning summaries without items.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, NewCategorySummary(c))
	}
	shared.RespondWithData(w, r, http.StatusOK, summaries)
}

// GetByID handles GET /categories/{id}, returning the category with items.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	category, err := h.categoryStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, NewCategoryDetail(category))
}
