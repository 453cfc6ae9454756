package api

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bcmenu/benglish-api/internal/api/middleware"
	"github.com/bcmenu/benglish-api/internal/api/shared"
	"github.com/bcmenu/benglish-api/internal/config"
	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/platform/logger"
	"github.com/bcmenu/benglish-api/internal/platform/media"
	"github.com/bcmenu/benglish-api/internal/service/auth"
	"github.com/bcmenu/benglish-api/internal/service/mailer"
	"github.com/bcmenu/benglish-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	passwordHasher   auth.PasswordHasher
	resetTokens      auth.ResetTokenGenerator
	mailer           mailer.Mailer
	uploader         media.Uploader
	mailCfg          config.MailConfig
	validator        *validator.Validate
	timeFunc         func() time.Time // Injectable for testing
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	passwordHasher auth.PasswordHasher,
	resetTokens auth.ResetTokenGenerator,
	mail mailer.Mailer,
	uploader media.Uploader,
	mailCfg config.MailConfig,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		passwordHasher:   passwordHasher,
		resetTokens:      resetTokens,
		mailer:           mail,
		uploader:         uploader,
		mailCfg:          mailCfg,
		validator:        validator.New(),
		timeFunc:         time.Now,
	}
}

// tokenPair generates a fresh access/refresh pair for the user.
func (h *AuthHandler) tokenPair(r *http.Request, user *domain.User) (*AuthResponse, error) {
	access, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:         NewUserResponse(user),
		Token:        access,
		RefreshToken: refresh,
	}, nil
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint can't be used to probe which emails hold accounts.
	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.Disabled {
		shared.RespondWithError(w, r, http.StatusForbidden, "Account is disabled")
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh. It rotates both tokens after
// re-checking that the account still exists and is not disabled.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to refresh tokens", err)
		return
	}
	if user.Disabled {
		shared.RespondWithError(w, r, http.StatusForbidden, "Account is disabled")
		return
	}

	resp, err := h.tokenPair(r, user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to refresh tokens", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout only
// acknowledges; the response never reveals whether the presented token was
// valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := shared.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Refresh token required")
		return
	}
	shared.RespondWithOK(w, r)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// DeleteAccount handles DELETE /auth/account. The account is disabled, not
// erased; progress rows stay in place should support need to restore it.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.userStore.Disable(r.Context(), userID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}

// ForgotPassword handles POST /auth/forgot. The response is identical
// whether or not the email belongs to an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ForgotPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil || user.Disabled {
		if err != nil && !store.IsNotFoundError(err) {
			log.Error("failed to look up account for password reset", "error", err)
		}
		shared.RespondWithOK(w, r)
		return
	}

	token, err := h.resetTokens.Generate()
	if err != nil {
		log.Error("failed to generate reset token", "error", err)
		shared.RespondWithOK(w, r)
		return
	}

	lifetime := time.Duration(h.mailCfg.ResetTokenMinutes) * time.Minute
	expires := sql.NullTime{Time: h.timeFunc().UTC().Add(lifetime), Valid: true}
	if err := h.userStore.SetResetToken(r.Context(), user.ID, token, expires); err != nil {
		log.Error("failed to store reset token", "error", err)
		shared.RespondWithOK(w, r)
		return
	}

	webLink := h.mailCfg.WebResetLinkBase + "?token=" + token
	appLink := h.mailCfg.AppResetLinkBase + "?token=" + token
	if err := h.mailer.SendPasswordReset(r.Context(), user.Email, webLink, appLink); err != nil {
		// Mail delivery is best effort; the client response stays uniform.
		log.Error("failed to send reset mail", "error", err)
	}

	shared.RespondWithOK(w, r)
}

// ChangePasswordWithToken handles POST /auth/change-password-temp. The
// token came from a reset mail; expired tokens are cleared on the way out.
func (h *AuthHandler) ChangePasswordWithToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByResetToken(r.Context(), req.Token)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Password reset token is invalid or expired")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to change password", err)
		return
	}

	if user.ResetExpires == nil || h.timeFunc().After(*user.ResetExpires) {
		if err := h.userStore.ClearResetToken(r.Context(), user.ID); err != nil {
			log.Error("failed to clear expired reset token", "error", err)
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Password reset token is invalid or expired")
		return
	}

	hashed, err := h.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to change password", err)
		return
	}

	// UpdatePassword clears the reset token in the same statement.
	if err := h.userStore.UpdatePassword(r.Context(), user.ID, hashed); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithOK(w, r)
}

// UpdateAvatar handles PUT /auth/avatar. The body is either raw image
// bytes with an image/* content type, or JSON carrying base64 image data.
func (h *AuthHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	data, contentType, err := readAvatarBody(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.uploader.Upload(r.Context(), data, contentType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to store image", err)
		return
	}

	if err := h.userStore.UpdateAvatarURL(r.Context(), user.ID, url); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	// Best-effort cleanup of the replaced image.
	if user.AvatarURL != "" {
		if err := h.uploader.Delete(r.Context(), user.AvatarURL); err != nil {
			log.Warn("failed to delete previous avatar", "error", err)
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AvatarResponse{AvatarURL: url})
}

// readAvatarBody decodes the two accepted avatar upload shapes.
func readAvatarBody(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		data, err := io.ReadAll(io.LimitReader(r.Body, media.MaxUploadBytes+1))
		if err != nil {
			return nil, "", errors.New("failed to read image body")
		}
		if ct, _, found := strings.Cut(contentType, ";"); found {
			contentType = ct
		}
		return data, strings.TrimSpace(contentType), nil
	}

	var req AvatarJSONRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, "", errors.New("invalid avatar payload")
	}

	raw := req.AvatarData
	dataType := req.ContentType

	// Data URIs carry their own content type: data:image/png;base64,....
	if strings.HasPrefix(raw, "data:") {
		meta, b64, found := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
		if !found {
			return nil, "", errors.New("invalid avatar data URI")
		}
		raw = b64
		dataType = strings.TrimSuffix(meta, ";base64")
	}
	if dataType == "" {
		dataType = "image/png"
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", errors.New("invalid base64 avatar data")
	}
	return data, dataType, nil
}
