package session

import (
	"context"

	"vidhub/internal/domain"
	"vidhub/internal/pkg/token"
)

// AccountRepositoryInterface — only the methods the session service uses.
// SetRefreshToken/GetRefreshToken are the session store: direct reads and
// writes of the account row's refresh-token column, no caching in between.
type AccountRepositoryInterface interface {
	GetByIdentity(ctx context.Context, identity string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SetRefreshToken(ctx context.Context, id int64, tok string) error
	GetRefreshToken(ctx context.Context, id int64) (string, error)
}

// TokenIssuer mints and checks the two token kinds.
type TokenIssuer interface {
	IssueAccess(accountID int64) (string, error)
	IssueRefresh(accountID int64) (string, error)
	Verify(raw string, kind token.Kind) (*token.Claims, error)
}
