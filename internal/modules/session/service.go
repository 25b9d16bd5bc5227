package session

import (
	"context"
	"errors"

	"vidhub/internal/domain"
	"vidhub/internal/pkg/password"
	"vidhub/internal/pkg/token"

	"gorm.io/gorm"
)

// Service is the session state machine: login establishes a session, refresh
// rotates it, logout destroys it. An account holds at most one live refresh
// token; every successful login or refresh overwrites the previous value,
// which is what makes a superseded token permanently unusable.
type Service struct {
	accounts   AccountRepositoryInterface
	tokens     TokenIssuer
	bcryptCost int
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewService(accounts AccountRepositoryInterface, tokens TokenIssuer, bcryptCost int) *Service {
	return &Service{
		accounts:   accounts,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Login authenticates by username or email (case-insensitive) and plaintext
// password. On success both tokens are issued and the refresh token is
// persisted, displacing whatever session existed before.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Account, *TokenPair, error) {
	acc, err := s.accounts.GetByIdentity(ctx, req.Identity())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAccountNotFound
		}
		return nil, nil, err
	}

	if !password.Verify(req.Password, acc.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, acc.ID)
	if err != nil {
		return nil, nil, err
	}

	sanitized := acc.Sanitized()
	return &sanitized, pair, nil
}

// Refresh trades a previously-issued refresh token for a fresh pair. The
// presented token must both verify cryptographically and equal, by value, the
// one persisted for the account. The equality check is the replay defense: a
// token superseded by a later login or refresh no longer matches and is
// rejected even though its signature is still good.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	if raw == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.Verify(raw, token.KindRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.accounts.GetRefreshToken(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if stored == "" || stored != raw {
		return nil, ErrInvalidRefreshToken
	}

	return s.issuePair(ctx, claims.AccountID)
}

// Logout clears the persisted refresh token. Outstanding access tokens stay
// valid until natural expiry; no revocation list is kept for them.
func (s *Service) Logout(ctx context.Context, accountID int64) error {
	err := s.accounts.SetRefreshToken(ctx, accountID, "")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// ChangePassword swaps the credential after verifying the old one. The live
// session is left untouched.
func (s *Service) ChangePassword(ctx context.Context, accountID int64, oldPlain, newPlain string) error {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if !password.Verify(oldPlain, acc.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(newPlain, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePasswordHash(ctx, accountID, hash)
}

// issuePair mints both tokens and persists the refresh one. The store write
// is the rotation point: once it lands, the previous refresh token can never
// pass the by-value comparison again.
func (s *Service) issuePair(ctx context.Context, accountID int64) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(accountID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(accountID)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetRefreshToken(ctx, accountID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
