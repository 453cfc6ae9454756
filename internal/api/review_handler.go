package api

import (
	"net/http"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/service/review"
)

// ReviewHandler serves review sessions over the learning ledger.
type ReviewHandler struct {
	reviewService review.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Ready handles GET /review/ready. With ?countOnly=1 it answers with the
// number of words due instead of materializing a batch; ?limit= caps the
// batch size.
func (h *ReviewHandler) Ready(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if queryBool(r, "countOnly") {
		count, err := h.reviewService.DueCount(r.Context(), userID)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, CountResponse{Count: count})
		return
	}

	limit := queryInt(r, "limit", 0)
	words, err := h.reviewService.DueItems(r.Context(), userID, limit)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	out := make([]ReviewWordResponse, 0, len(words))
	for _, wp := range words {
		out = append(out, NewReviewWordResponse(wp))
	}
	shared.RespondWithData(w, r, http.StatusOK, out)
}

// Complete handles POST /review/complete. Decoding is deliberately
// forgiving: an empty, absent, or malformed item list is a no-op success,
// so clients can always close a session.
func (h *ReviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ReviewCompleteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		req.Items = nil
	}

	if err := h.reviewService.MarkReviewed(r.Context(), userID, req.ItemIDs()); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}
