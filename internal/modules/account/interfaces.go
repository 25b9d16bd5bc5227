package account

import (
	"context"

	"vidhub/internal/domain"
	"vidhub/internal/mediahost"
)

// AccountRepositoryInterface — only the methods the account service uses.
type AccountRepositoryInterface interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, fullName, email string) error
}

// MediaHost is the remote media store used at registration for the initial
// avatar/cover upload.
type MediaHost interface {
	Upload(ctx context.Context, data []byte, contentType string) (mediahost.Asset, error)
}
