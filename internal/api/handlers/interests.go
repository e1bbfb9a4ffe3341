package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/models"
	"github.com/rohits-web03/vybr8r/internal/repositories"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

// ListInterests godoc
// @Summary All interests
// @Tags Interests
// @Produce json
// @Success 200 {array} models.Interest
// @Router /api/interests [get]
func (h *Handler) ListInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := h.interests.List(r.Context())
	if err != nil {
		h.serverError(w, r, "list interests failed", err)
		return
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	utils.JSON(w, http.StatusOK, interests)
}

// UserInterests godoc
// @Summary Interests of a user
// @Tags Interests
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.Interest
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/interests/user/{userId} [get]
func (h *Handler) UserInterests(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	interests, err := h.interests.ForUser(r.Context(), userID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, r, "user interests failed", err)
		return
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	utils.JSON(w, http.StatusOK, interests)
}
