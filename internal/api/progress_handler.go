package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/service/progress"
)

// ProgressHandler serves the per-user learning ledger and its aggregates.
type ProgressHandler struct {
	progressService progress.ProgressService
	validator       *validator.Validate
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService progress.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		validator:       validator.New(),
	}
}

// Learn handles POST /progress/learn. Items in the batch are applied
// independently; a partial outcome still answers with ok.
func (h *ProgressHandler) Learn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req LearnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	items := make([]progress.LearnItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = progress.LearnItem{
			ItemID:   it.ItemID,
			English:  it.English,
			Romanian: it.Romanian,
		}
	}

	source := domain.ProgressSource(req.Source)
	if _, err := h.progressService.MarkLearnedBatch(r.Context(), userID, req.CategoryID, items, source); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}

// Summary handles GET /progress/summary.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	counts, err := h.progressService.SummaryByCategory(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	entries := make([]SummaryEntryResponse, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, SummaryEntryResponse{
			CategoryID: c.CategoryID,
			Learned:    c.Learned,
		})
	}
	shared.RespondWithData(w, r, http.StatusOK, entries)
}

// Learned handles GET /progress/learned with skip/limit paging. An
// optional categoryId query parameter narrows the page to one category.
func (h *ProgressHandler) Learned(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	categoryID := queryUUID(r, "categoryId")
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", progress.MaxPageSize)

	words, err := h.progressService.ListLearned(r.Context(), userID, categoryID, skip, limit)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	out := make([]LearnedWordResponse, 0, len(words))
	for _, wp := range words {
		out = append(out, NewLearnedWordResponse(wp))
	}
	shared.RespondWithData(w, r, http.StatusOK, out)
}

// DifficultWrong handles POST /progress/difficult-wrong. Reporting a word
// the user never learned is accepted and ignored.
func (h *ProgressHandler) DifficultWrong(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req WrongAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.progressService.MarkWrongAnswer(r.Context(), userID, req.CategoryID, req.ItemID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}

// DifficultCount handles GET /progress/difficult-count.
func (h *ProgressHandler) DifficultCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	count, err := h.progressService.DifficultCount(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, CountResponse{Count: count})
}
