package handlers

import (
	"errors"
	"net/http"
	"strings"

	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler donation image uploads
type UploadHandler struct {
	imageService services.ImageServiceInterface
	maxSizeBytes int64
	logger       utils.Logger
}

// NewUploadHandler creates an UploadHandler accepting images up to maxSizeBytes
func NewUploadHandler(imageService services.ImageServiceInterface, maxSizeBytes int64) *UploadHandler {
	return &UploadHandler{
		imageService: imageService,
		maxSizeBytes: maxSizeBytes,
		logger:       utils.GetLogger(),
	}
}

// UploadImage handles POST /api/donor/uploads/image (multipart field "image")
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	if !h.imageService.Enabled() {
		utils.RespondError(c, utils.ErrStorageUnavailable)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.logger.Warn("image upload without file", "userID", userID, "error", err.Error())
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Header("Connection", "close")
			utils.RespondError(c, utils.ErrRequestTooLarge)
			return
		}
		utils.RespondError(c, utils.ErrImageRequired)
		return
	}

	if h.maxSizeBytes > 0 && fileHeader.Size > h.maxSizeBytes {
		h.logger.Warn("image too large",
			"userID", userID,
			"filename", fileHeader.Filename,
			"fileSize", fileHeader.Size,
			"maxAllowed", h.maxSizeBytes)
		c.Header("Connection", "close")
		utils.RespondError(c, utils.ErrRequestTooLarge)
		return
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		h.logger.Warn("rejected non-image upload",
			"userID", userID,
			"filename", fileHeader.Filename,
			"contentType", fileHeader.Header.Get("Content-Type"))
		utils.RespondError(c, utils.ErrUnsupportedMediaType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServiceError(c, err, h.logger, "UploadImage", "userID", userID)
		return
	}
	defer file.Close()

	resp, err := h.imageService.UploadDonationImage(c.Request.Context(), userID, file)
	if err != nil {
		respondServiceError(c, err, h.logger, "UploadImage", "userID", userID, "filename", fileHeader.Filename)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Image uploaded successfully", resp)
}
