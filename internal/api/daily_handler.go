package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/service/progress"
)

// DailyHandler serves the per-day activity counters.
type DailyHandler struct {
	progressService progress.ProgressService
	validator       *validator.Validate
}

// NewDailyHandler creates a new DailyHandler.
func NewDailyHandler(progressService progress.ProgressService) *DailyHandler {
	return &DailyHandler{
		progressService: progressService,
		validator:       validator.New(),
	}
}

// ActivityDays handles GET /activity/days.
func (h *DailyHandler) ActivityDays(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	days, err := h.progressService.ActivityDays(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if days == nil {
		days = []string{}
	}
	shared.RespondWithData(w, r, http.StatusOK, days)
}

// Get handles GET /daily-progress?date=. A day without activity answers
// with zero counters.
func (h *DailyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	dp, err := h.progressService.DailyProgress(r.Context(), userID, date)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, DailyProgressResponse{
		Date:      dp.Date,
		Learned:   dp.Learned,
		Practiced: dp.Practiced,
		Reviewed:  dp.Reviewed,
	})
}

// Increment handles POST /daily-progress/increment.
func (h *DailyHandler) Increment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req IncrementDailyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	deltas := domain.DailyDeltas{
		Learned:   req.Learned,
		Practiced: req.Practiced,
		Reviewed:  req.Reviewed,
	}
	if err := h.progressService.IncrementDaily(r.Context(), userID, req.Date, deltas); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}
