package api

import (
	"encoding/json"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// --- Auth ---

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest carries the refresh token being discarded.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest completes a token-gated password change.
type ChangePasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AvatarJSONRequest is the JSON alternative to a raw image body.
type AvatarJSONRequest struct {
	AvatarData  string `json:"avatarData" validate:"required"`
	ContentType string `json:"contentType"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse carries the user and a fresh token pair.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// AvatarResponse returns the stored avatar URL after an upload.
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

// --- Categories ---

// CategorySummary is the list view of a category, without its items.
type CategorySummary struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Total    int       `json:"total"`
	Image    string    `json:"image,omitempty"`
}

// NewCategorySummary builds the list view of a category.
func NewCategorySummary(c *domain.Category) CategorySummary {
	return CategorySummary{
		ID:       c.ID,
		Category: c.Name,
		Total:    c.Total,
		Image:    c.Image,
	}
}

// CategoryDetail is the full view of a category, items included.
type CategoryDetail struct {
	CategorySummary
	Items []domain.Item `json:"items"`
}

// NewCategoryDetail builds the full view of a category.
func NewCategoryDetail(c *domain.Category) CategoryDetail {
	return CategoryDetail{
		CategorySummary: NewCategorySummary(c),
		Items:           c.Items,
	}
}

// --- Progress ---

// LearnItemPayload is one item of a learn batch. Older clients send the
// item identifier as "id" instead of "itemId"; both decode into ItemID,
// with "itemId" winning when both are present.
type LearnItemPayload struct {
	ItemID   uuid.UUID
	English  string
	Romanian string
}

// UnmarshalJSON implements the itemId/id union decoding. An unparseable
// identifier leaves ItemID nil rather than failing the batch; the service
// counts that single item as failed.
func (p *LearnItemPayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID   string `json:"itemId"`
		LegacyID string `json:"id"`
		English  string `json:"english"`
		Romanian string `json:"romanian"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := raw.ItemID
	if id == "" {
		id = raw.LegacyID
	}
	if parsed, err := uuid.Parse(id); err == nil {
		p.ItemID = parsed
	}
	p.English = raw.English
	p.Romanian = raw.Romanian
	return nil
}

// LearnRequest is the payload for marking a batch of words learned.
type LearnRequest struct {
	CategoryID uuid.UUID          `json:"categoryId" validate:"required"`
	Items      []LearnItemPayload `json:"items"      validate:"required,min=1"`
	Source     string             `json:"source"`
}

// WrongAnswerRequest reports one missed word.
type WrongAnswerRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
	ItemID     uuid.UUID `json:"itemId"     validate:"required"`
}

// LearnedWordResponse is the client view of one ledger row.
type LearnedWordResponse struct {
	Category   uuid.UUID `json:"category"`
	ItemID     uuid.UUID `json:"itemId"`
	English    string    `json:"english"`
	Romanian   string    `json:"romanian"`
	Source     string    `json:"source,omitempty"`
	LearnedAt  time.Time `json:"learnedAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// NewLearnedWordResponse builds the client view of a ledger row.
func NewLearnedWordResponse(p *domain.WordProgress) LearnedWordResponse {
	return LearnedWordResponse{
		Category:   p.CategoryID,
		ItemID:     p.ItemID,
		English:    p.English,
		Romanian:   p.Romanian,
		Source:     string(p.Source),
		LearnedAt:  p.LearnedAt,
		LastSeenAt: p.LastSeenAt,
	}
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int `json:"count"`
}

// --- Review ---

// ReviewWordResponse is one word of a review batch.
type ReviewWordResponse struct {
	Category       uuid.UUID `json:"category"`
	ItemID         uuid.UUID `json:"itemId"`
	English        string    `json:"english"`
	Romanian       string    `json:"romanian"`
	DifficultCount int       `json:"difficultCount"`
}

// NewReviewWordResponse builds the review view of a ledger row.
func NewReviewWordResponse(p *domain.WordProgress) ReviewWordResponse {
	return ReviewWordResponse{
		Category:       p.CategoryID,
		ItemID:         p.ItemID,
		English:        p.English,
		Romanian:       p.Romanian,
		DifficultCount: p.DifficultCount,
	}
}

// ReviewCompleteItem is one entry of a completed review session. Decoding
// is lenient: a malformed entry or identifier leaves ItemID nil instead of
// failing the request, and recording the session drops it.
type ReviewCompleteItem struct {
	ItemID uuid.UUID
}

// UnmarshalJSON accepts "itemId" or the legacy "id", both as strings.
func (i *ReviewCompleteItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID   string `json:"itemId"`
		LegacyID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	id := raw.ItemID
	if id == "" {
		id = raw.LegacyID
	}
	if parsed, err := uuid.Parse(id); err == nil {
		i.ItemID = parsed
	}
	return nil
}

// ReviewCompleteRequest reports the items just reviewed.
type ReviewCompleteRequest struct {
	Items []ReviewCompleteItem `json:"items"`
}

// ItemIDs flattens the reviewed entries into an id list. Entries that
// failed to decode contribute a nil id, which the review service drops.
func (r ReviewCompleteRequest) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ItemID
	}
	return ids
}

// --- Daily progress ---

// DailyProgressResponse is the counter view for one date.
type DailyProgressResponse struct {
	Date      string `json:"date"`
	Learned   int    `json:"learned"`
	Practiced int    `json:"practiced"`
	Reviewed  int    `json:"reviewed"`
}

// IncrementDailyRequest adds to the date's counters.
type IncrementDailyRequest struct {
	Date      string `json:"date" validate:"required"`
	Learned   int    `json:"learnedDelta"`
	Practiced int    `json:"practicedDelta"`
	Reviewed  int    `json:"reviewedDelta"`
}

// SummaryEntryResponse is one row of the per-category summary.
type SummaryEntryResponse struct {
	CategoryID uuid.UUID `json:"_id"`
	Learned    int       `json:"learned"`
}
