package media

import (
	"context"

	"vidhub/internal/domain"
	"vidhub/internal/mediahost"
)

// Host is the remote media store. Upload must confirm the asset is durably
// stored before returning; Delete is idempotent, deleting an already-absent
// asset id is not an error.
type Host interface {
	Upload(ctx context.Context, data []byte, contentType string) (mediahost.Asset, error)
	Delete(ctx context.Context, assetID string) error
}

// AccountRepositoryInterface — only the methods the media service uses.
type AccountRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateMedia(ctx context.Context, id int64, slot domain.MediaSlot, url, assetID string) error
}
