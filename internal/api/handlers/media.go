package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rohits-web03/vybr8r/internal/api/middleware"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

const presignExpiry = 15 * time.Minute

var imageExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type PresignMediaRequest struct {
	Kind        string `json:"kind" validate:"required,mediakind"`
	ContentType string `json:"contentType" validate:"required,startswith=image/"`
}

type PresignMediaResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PresignMedia godoc
// @Summary Presign an avatar or banner upload
// @Description Returns a short-lived PUT URL; pass publicUrl as avatar or banner when completing onboarding
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PresignMediaRequest true "Upload"
// @Success 200 {object} PresignMediaResponse
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/users/media/presign [post]
func (h *Handler) PresignMedia(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		utils.Fail(w, http.StatusServiceUnavailable, "Media uploads are not configured")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PresignMediaRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	contentType := strings.ToLower(req.ContentType)
	ext, ok := imageExtensions[contentType]
	if !ok {
		utils.Fail(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	suffix, err := utils.GenerateSecureToken(12)
	if err != nil {
		h.serverError(w, r, "generate media key failed", err)
		return
	}
	key := fmt.Sprintf("users/%s/%s-%s%s", userID, strings.ToLower(req.Kind), suffix, ext)

	uploadURL, err := h.media.PresignPut(r.Context(), key, contentType, presignExpiry)
	if err != nil {
		h.serverError(w, r, "presign upload failed", err)
		return
	}

	utils.JSON(w, http.StatusOK, PresignMediaResponse{
		UploadURL: uploadURL,
		PublicURL: h.media.PublicURL(key),
		Key:       key,
		ExpiresAt: h.now().Add(presignExpiry),
	})
}
