package session

import (
	"errors"
	"net/http"
	"strings"

	"vidhub/internal/config"
	"vidhub/internal/pkg/password"
	"vidhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// CookieOptions controls how token cookies are written. The core stays
// transport-agnostic; cookies are purely this handler's concern.
type CookieOptions struct {
	Secure        bool
	SameSite      http.SameSite
	Domain        string
	AccessMaxAge  int
	RefreshMaxAge int
}

func CookieOptionsFromConfig(cfg *config.Config) CookieOptions {
	sameSite := http.SameSiteLaxMode
	switch strings.ToLower(cfg.CookieSameSite) {
	case "none":
		sameSite = http.SameSiteNoneMode
	case "strict":
		sameSite = http.SameSiteStrictMode
	}
	return CookieOptions{
		Secure:        cfg.CookieSecure,
		SameSite:      sameSite,
		Domain:        cfg.CookieDomain,
		AccessMaxAge:  int(cfg.AccessTokenTTL.Seconds()),
		RefreshMaxAge: int(cfg.RefreshTokenTTL.Seconds()),
	}
}

// Handler exposes the session lifecycle over HTTP.
type Handler struct {
	service *Service
	cookies CookieOptions
}

func NewHandler(service *Service, cookies CookieOptions) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/change-password", h.ChangePassword)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Identity() == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username or email and password are required")
		return
	}

	acc, pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account does not exist")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username/email or password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setTokenCookies(c, pair)
	response.SuccessMessage(c, http.StatusOK, gin.H{
		"account":       acc,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "Logged in successfully")
}

// Refresh accepts the refresh token from the cookie or the request body and
// rotates the session.
func (h *Handler) Refresh(c *gin.Context) {
	raw, _ := c.Cookie(refreshCookie)
	if raw == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token is required")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusUnauthorized, "TOKEN_INVALID", "Refresh token is expired or used")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	h.setTokenCookies(c, pair)
	response.SuccessMessage(c, http.StatusOK, pair, "Access token refreshed")
}

func (h *Handler) Logout(c *gin.Context) {
	accountID := c.GetInt64("account_id")

	if err := h.service.Logout(c.Request.Context(), accountID); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.clearTokenCookies(c)
	response.SuccessMessage(c, http.StatusOK, gin.H{}, "Logged out")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	accountID := c.GetInt64("account_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Old and new passwords are required")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), accountID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Old password is incorrect")
		case errors.Is(err, password.ErrEmptyPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "New password must not be empty")
		case errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "PASSWORD_CHANGE_FAILED", "Failed to change password")
		}
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *Handler) setTokenCookies(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(accessCookie, pair.AccessToken, h.cookies.AccessMaxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, h.cookies.RefreshMaxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(accessCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(refreshCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}
