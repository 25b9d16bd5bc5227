package domain

import "time"

// MediaSlot identifies which of the account's image attachments an
// operation targets.
type MediaSlot string

const (
	SlotAvatar MediaSlot = "avatar"
	SlotCover  MediaSlot = "cover"
)

// Account represents a registered user.
//
// Username and email are stored lowercased and are unique across accounts.
// RefreshToken holds the single active refresh token for the account (empty
// when logged out); issuing a new one overwrites the previous value, so at
// most one session per account is live at any time.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	RefreshToken string `json:"-"`

	AvatarURL     string `json:"avatar_url"`
	AvatarAssetID string `json:"-"`
	CoverURL      string `json:"cover_url,omitempty"`
	CoverAssetID  string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to the HTTP layer: credential and
// session fields are stripped.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	a.RefreshToken = ""
	return a
}
