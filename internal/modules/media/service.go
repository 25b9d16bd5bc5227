package media

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"vidhub/internal/domain"

	"gorm.io/gorm"
)

// MaxFileSize caps a single image upload.
const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// allowedMimeTypes defines which image types are accepted for avatar and
// cover slots.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SniffImage validates size and detects the content type from the payload
// itself (first 512 bytes), ignoring whatever the client declared.
func SniffImage(data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", ErrFileTooLarge
	}
	mimeType := http.DetectContentType(data)
	mimeType = strings.Split(mimeType, ";")[0]
	if !allowedMimeTypes[mimeType] {
		return "", ErrInvalidMimeType
	}
	return mimeType, nil
}

// Service replaces an account's avatar or cover asset at the media host.
//
// Ordering is deliberate: the new asset is uploaded and confirmed first, then
// the old one is deleted, so there is never a window where the account has no
// image at all. The delete is best-effort; a host failure there is logged and
// swallowed, leaving at worst an orphaned remote asset.
type Service struct {
	accounts AccountRepositoryInterface
	host     Host
}

func NewService(accounts AccountRepositoryInterface, host Host) *Service {
	return &Service{accounts: accounts, host: host}
}

// Replace uploads data as the account's new image for slot and returns the
// new public URL. The avatar slot requires a non-empty file; an empty upload
// to the cover slot is a no-op, since the cover is optional end-to-end.
func (s *Service) Replace(ctx context.Context, accountID int64, slot domain.MediaSlot, data []byte) (string, error) {
	if len(data) == 0 {
		if slot == domain.SlotCover {
			return "", nil
		}
		return "", ErrMissingFile
	}

	contentType, err := SniffImage(data)
	if err != nil {
		return "", err
	}

	asset, err := s.host.Upload(ctx, data, contentType)
	if err != nil {
		return "", fmt.Errorf("media host upload: %w", err)
	}

	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	oldAssetID := acc.AvatarAssetID
	if slot == domain.SlotCover {
		oldAssetID = acc.CoverAssetID
	}

	if oldAssetID != "" {
		if err := s.host.Delete(ctx, oldAssetID); err != nil {
			log.Printf("media: best-effort delete of old asset %s failed: %v", oldAssetID, err)
		}
	}

	if err := s.accounts.UpdateMedia(ctx, accountID, slot, asset.URL, asset.AssetID); err != nil {
		// the new asset is already at the host; acceptable orphan, logged
		log.Printf("media: persisting %s for account %d failed, asset %s orphaned: %v", slot, accountID, asset.AssetID, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	return asset.URL, nil
}
