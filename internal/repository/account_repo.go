package repository

import (
	"context"
	"strings"
	"time"

	"vidhub/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Username      string    `gorm:"column:username;uniqueIndex;not null"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	FullName      string    `gorm:"column:full_name"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	RefreshToken  string    `gorm:"column:refresh_token"`
	AvatarURL     string    `gorm:"column:avatar_url"`
	AvatarAssetID string    `gorm:"column:avatar_asset_id"`
	CoverURL      string    `gorm:"column:cover_url"`
	CoverAssetID  string    `gorm:"column:cover_asset_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

func toDomainAccount(m accountModel) *domain.Account {
	return &domain.Account{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		FullName:      m.FullName,
		PasswordHash:  m.PasswordHash,
		RefreshToken:  m.RefreshToken,
		AvatarURL:     m.AvatarURL,
		AvatarAssetID: m.AvatarAssetID,
		CoverURL:      m.CoverURL,
		CoverAssetID:  m.CoverAssetID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toAccountModel(a *domain.Account) accountModel {
	return accountModel{
		ID:            a.ID,
		Username:      strings.ToLower(strings.TrimSpace(a.Username)),
		Email:         strings.ToLower(strings.TrimSpace(a.Email)),
		FullName:      a.FullName,
		PasswordHash:  a.PasswordHash,
		RefreshToken:  a.RefreshToken,
		AvatarURL:     a.AvatarURL,
		AvatarAssetID: a.AvatarAssetID,
		CoverURL:      a.CoverURL,
		CoverAssetID:  a.CoverAssetID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*a = *toDomainAccount(m)
	return nil
}

// GetByIdentity looks an account up by username or email, case-insensitively.
// The same value is matched against both columns, mirroring login forms that
// accept either.
func (r *AccountRepository) GetByIdentity(ctx context.Context, identity string) (*domain.Account, error) {
	ident := strings.ToLower(strings.TrimSpace(identity))
	var m accountModel
	tx := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", ident, ident).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("username = ? OR email = ?",
			strings.ToLower(strings.TrimSpace(username)),
			strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// GetByEmail matches the email column only. Uniqueness checks on profile
// updates go through here rather than GetByIdentity, so an account whose
// username happens to look like the requested email cannot cause a false
// conflict.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

// UpdateProfile rewrites the mutable identity fields only. Empty values are
// skipped so partial updates don't blank columns.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, fullName, email string) error {
	updates := map[string]any{}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if len(updates) == 0 {
		return nil
	}
	return r.updateFields(ctx, id, updates)
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.updateFields(ctx, id, map[string]any{"password_hash": hash})
}

// UpdateMedia swaps the url/asset-id pair for one slot atomically (single-row
// UPDATE).
func (r *AccountRepository) UpdateMedia(ctx context.Context, id int64, slot domain.MediaSlot, url, assetID string) error {
	updates := map[string]any{}
	switch slot {
	case domain.SlotCover:
		updates["cover_url"] = url
		updates["cover_asset_id"] = assetID
	default:
		updates["avatar_url"] = url
		updates["avatar_asset_id"] = assetID
	}
	return r.updateFields(ctx, id, updates)
}

// SetRefreshToken persists the account's single active refresh token. An
// empty token clears the session (logout).
func (r *AccountRepository) SetRefreshToken(ctx context.Context, id int64, tok string) error {
	return r.updateFields(ctx, id, map[string]any{"refresh_token": tok})
}

func (r *AccountRepository) GetRefreshToken(ctx context.Context, id int64) (string, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).Select("refresh_token").First(&m, id)
	if tx.Error != nil {
		return "", tx.Error
	}
	return m.RefreshToken, nil
}

func (r *AccountRepository) updateFields(ctx context.Context, id int64, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&accountModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Migrate creates the accounts table. Used by local bootstrap and tests.
func (r *AccountRepository) Migrate() error {
	return r.db.AutoMigrate(&accountModel{})
}
