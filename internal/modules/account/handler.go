package account

import (
	"errors"
	"net/http"

	"vidhub/internal/modules/media"
	"vidhub/internal/pkg/password"
	"vidhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/auth/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PATCH("/me", h.UpdateProfile)
	}
}

// Register handles the multipart registration form: text fields plus a
// required avatar file and an optional cover file.
func (h *Handler) Register(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(2 * media.MaxFileSize); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to parse form")
		return
	}

	req := RegisterRequest{
		FullName: c.PostForm("full_name"),
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		data, err := media.ReadFileHeader(fh)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to read avatar file")
			return
		}
		req.Avatar = data
	}
	if fh, err := c.FormFile("cover_image"); err == nil {
		data, err := media.ReadFileHeader(fh)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to read cover file")
			return
		}
		req.Cover = data
	}

	acc, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, password.ErrEmptyPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Full name, username, email and password are required")
		case errors.Is(err, ErrAvatarRequired), errors.Is(err, media.ErrMissingFile):
			response.Error(c, http.StatusBadRequest, "AVATAR_REQUIRED", "Avatar image is required")
		case errors.Is(err, media.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds the maximum allowed size")
		case errors.Is(err, media.ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only image files are allowed")
		case errors.Is(err, ErrAccountExists):
			response.Error(c, http.StatusConflict, "ACCOUNT_EXISTS", "An account with this username or email already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register account")
		}
		return
	}

	response.SuccessMessage(c, http.StatusCreated, gin.H{"account": acc}, "Account registered successfully")
}

func (h *Handler) GetMe(c *gin.Context) {
	accountID := c.GetInt64("account_id")

	acc, err := h.service.GetCurrent(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch account")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": acc})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	accountID := c.GetInt64("account_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	acc, err := h.service.UpdateProfile(c.Request.Context(), accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingToUpdate):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one of full_name or email is required")
		case errors.Is(err, ErrAccountExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		}
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{"account": acc}, "Account details updated successfully")
}
