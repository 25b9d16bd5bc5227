// Command session_cleanup clears persisted refresh tokens that no longer
// verify (expired or signed with rotated-out keys), so logged-out-by-time
// accounts don't keep dead session state around. Meant to run from cron.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"vidhub/internal/config"
	"vidhub/internal/database"
	"vidhub/internal/pkg/token"
)

type accountTokenRow struct {
	ID           int64  `gorm:"column:id"`
	RefreshToken string `gorm:"column:refresh_token"`
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	issuer := token.NewIssuer(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	var rows []accountTokenRow
	if err := db.Table("accounts").
		Select("id", "refresh_token").
		Where("refresh_token <> ''").
		Find(&rows).Error; err != nil {
		log.Fatalf("scan accounts failed: %v", err)
	}

	var cleared int64
	for _, row := range rows {
		if _, err := issuer.Verify(row.RefreshToken, token.KindRefresh); err == nil {
			continue
		}
		res := db.Table("accounts").
			Where("id = ? AND refresh_token = ?", row.ID, row.RefreshToken).
			Update("refresh_token", "")
		if res.Error != nil {
			log.Fatalf("clear refresh token for account %d failed: %v", row.ID, res.Error)
		}
		cleared += res.RowsAffected
	}

	log.Printf("session cleanup completed: scanned=%d cleared=%d", len(rows), cleared)
}
