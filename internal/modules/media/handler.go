package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"vidhub/internal/domain"
	"vidhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users/me")
	{
		userGroup.PATCH("/avatar", h.UpdateAvatar)
		userGroup.PATCH("/cover", h.UpdateCover)
	}
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	h.replace(c, domain.SlotAvatar, "avatar")
}

func (h *Handler) UpdateCover(c *gin.Context) {
	h.replace(c, domain.SlotCover, "cover_image")
}

func (h *Handler) replace(c *gin.Context, slot domain.MediaSlot, field string) {
	accountID := c.GetInt64("account_id")

	data, err := readFormFile(c, field)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "MISSING_FILE", "Image file is missing")
		return
	}

	url, err := h.service.Replace(c.Request.Context(), accountID, slot, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFile):
			response.Error(c, http.StatusBadRequest, "MISSING_FILE", "Image file is missing")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds the maximum allowed size")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only image files are allowed")
		case errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account does not exist")
		default:
			response.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "Failed to store image")
		}
		return
	}

	response.SuccessMessage(c, http.StatusOK, gin.H{
		"slot": slot,
		"url":  url,
	}, "Image updated successfully")
}

// readFormFile pulls one multipart file into memory. The service re-checks
// size; the read here is capped too so a huge upload can't balloon memory.
func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	return ReadFileHeader(fileHeader)
}

func ReadFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxFileSize+1))
}
