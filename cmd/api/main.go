package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vidhub/internal/config"
	"vidhub/internal/database"
	"vidhub/internal/mediahost"
	"vidhub/internal/middleware"
	"vidhub/internal/modules/account"
	"vidhub/internal/modules/media"
	"vidhub/internal/modules/session"
	"vidhub/internal/pkg/token"
	"vidhub/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	accountRepo := repository.NewAccountRepository(db)
	if err := accountRepo.Migrate(); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	host, err := mediahost.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("media host: %v", err)
	}

	issuer := token.NewIssuer(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	sessionService := session.NewService(accountRepo, issuer, cfg.BcryptCost)
	sessionHandler := session.NewHandler(sessionService, session.CookieOptionsFromConfig(cfg))

	accountService := account.NewService(accountRepo, host, cfg.BcryptCost)
	accountHandler := account.NewHandler(accountService)

	mediaService := media.NewService(accountRepo, host)
	mediaHandler := media.NewHandler(mediaService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		accountHandler.RegisterPublicRoutes(v1)
		sessionHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(issuer))
		{
			sessionHandler.RegisterProtectedRoutes(protected)
			accountHandler.RegisterProtectedRoutes(protected)
			mediaHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
