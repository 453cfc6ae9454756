package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameLength      = errors.New("username must be between 3 and 30 characters")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Accounts are either password-based
// (username + email + password) or Google-based (GoogleID set, username and
// password optional). Deleting an account only sets Disabled; the record is
// retained and rejected at every authentication checkpoint.
type User struct {
	ID             uuid.UUID  `json:"_id"`
	Username       string     `json:"username,omitempty"`
	Email          string     `json:"email"`
	Password       string     `json:"-"` // Plaintext, transient during registration/updates
	HashedPassword string     `json:"-"` // Never exposed
	GoogleID       string     `json:"-"`
	GoogleEmail    string     `json:"-"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	Disabled       bool       `json:"-"`
	ResetToken     string     `json:"-"`
	ResetExpires   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"-"`
}

// NewUser creates a password-based User. The email is normalized to lower
// case. The plaintext password is carried on the struct; the caller is
// responsible for hashing it before storage.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Email:     NormalizeEmail(email),
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewGoogleUser creates a Google-OAuth User without a password.
func NewGoogleUser(googleID, email string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Email:       NormalizeEmail(email),
		GoogleID:    googleID,
		GoogleEmail: NormalizeEmail(email),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// Username and password are required only for non-Google accounts.
	if u.GoogleID == "" {
		if u.Username == "" {
			return ErrEmptyUsername
		}
		if len(u.Username) < 3 || len(u.Username) > 30 {
			return ErrUsernameLength
		}

		if u.Password != "" {
			if len(u.Password) < 8 {
				return ErrPasswordTooShort
			}
			if len(u.Password) > 72 { // bcrypt's practical limit
				return ErrPasswordTooLong
			}
		} else if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	} else if u.Username != "" && (len(u.Username) < 3 || len(u.Username) > 30) {
		return ErrUsernameLength
	}

	return nil
}

// validEmailFormat performs a basic shape check: a non-edge '@' followed by
// a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
