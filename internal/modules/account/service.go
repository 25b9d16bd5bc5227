package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidhub/internal/domain"
	"vidhub/internal/modules/media"
	"vidhub/internal/pkg/password"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service owns account registration and profile maintenance.
type Service struct {
	accounts   AccountRepositoryInterface
	host       MediaHost
	bcryptCost int
}

func NewService(accounts AccountRepositoryInterface, host MediaHost, bcryptCost int) *Service {
	return &Service{
		accounts:   accounts,
		host:       host,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account. The avatar must upload successfully before any
// row is written, so a failed upload never leaves a half-created account.
// Username and email are folded to lower case and must both be unique.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Account, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return nil, ErrMissingFields
	}
	if len(req.Avatar) == 0 {
		return nil, ErrAvatarRequired
	}

	exists, err := s.accounts.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := password.Hash(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	avatarType, err := media.SniffImage(req.Avatar)
	if err != nil {
		return nil, err
	}
	avatar, err := s.host.Upload(ctx, req.Avatar, avatarType)
	if err != nil {
		return nil, fmt.Errorf("avatar upload: %w", err)
	}

	var coverURL, coverAssetID string
	if len(req.Cover) > 0 {
		coverType, err := media.SniffImage(req.Cover)
		if err != nil {
			return nil, err
		}
		cover, err := s.host.Upload(ctx, req.Cover, coverType)
		if err != nil {
			return nil, fmt.Errorf("cover upload: %w", err)
		}
		coverURL, coverAssetID = cover.URL, cover.AssetID
	}

	acc := &domain.Account{
		Username:      strings.ToLower(strings.TrimSpace(req.Username)),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:      strings.TrimSpace(req.FullName),
		PasswordHash:  hash,
		AvatarURL:     avatar.URL,
		AvatarAssetID: avatar.AssetID,
		CoverURL:      coverURL,
		CoverAssetID:  coverAssetID,
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	sanitized := acc.Sanitized()
	return &sanitized, nil
}

// GetCurrent returns the sanitized account for an authenticated id.
func (s *Service) GetCurrent(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	sanitized := acc.Sanitized()
	return &sanitized, nil
}

// UpdateProfile changes display name and/or email. At least one must be
// given; a new email has to stay unique across accounts.
func (s *Service) UpdateProfile(ctx context.Context, accountID int64, req UpdateProfileRequest) (*domain.Account, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" && email == "" {
		return nil, ErrNothingToUpdate
	}

	if email != "" {
		other, err := s.accounts.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != accountID:
			return nil, ErrAccountExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if err := s.accounts.UpdateProfile(ctx, accountID, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetCurrent(ctx, accountID)
}

// isDuplicateKey recognises a unique-index violation from either driver. The
// upfront existence check races with concurrent registrations; the index is
// the source of truth.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
