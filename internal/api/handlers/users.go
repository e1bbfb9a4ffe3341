package handlers

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/vybr8r/internal/api/middleware"
	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/identity"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

const topCreatorsLimit = 10

type OnboardingRequest struct {
	Username  string   `json:"username" validate:"required,max=50"`
	Handle    string   `json:"handle" validate:"required"`
	Bio       *string  `json:"bio" validate:"omitempty,max=280"`
	Avatar    *string  `json:"avatar"`
	Banner    *string  `json:"banner"`
	Interests []string `json:"interests" validate:"max=20,dive,max=50"`
}

// Me godoc
// @Summary Current user
// @Description Full profile of the credential's user, including the linked creator token
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfile
// @Failure 401 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.resolver.FindByID(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, r, "get profile failed", err)
		return
	}

	utils.JSON(w, http.StatusOK, profile(user))
}

// CompleteOnboarding godoc
// @Summary Complete onboarding
// @Description Sets username, handle and optional profile fields, and connects interests by name
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OnboardingRequest true "Profile"
// @Success 200 {object} UserProfile
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 409 {object} utils.Payload
// @Router /api/users/onboarding [put]
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req OnboardingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.onboarding.Complete(r.Context(), userID, services.ProfileInput{
		Username:  req.Username,
		Handle:    req.Handle,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
		Banner:    req.Banner,
		Interests: req.Interests,
	})
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		utils.Fail(w, http.StatusBadRequest, "Username is required")
		return
	case errors.Is(err, identity.ErrInvalidHandle):
		utils.Fail(w, http.StatusBadRequest, "Handle must be 3-30 characters of a-z, 0-9 or _")
		return
	case errors.Is(err, services.ErrHandleTaken):
		utils.Fail(w, http.StatusConflict, "Handle already taken")
		return
	case errors.Is(err, services.ErrUserNotFound):
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		h.serverError(w, r, "update profile failed", err)
		return
	}

	utils.JSON(w, http.StatusOK, profile(user))
}

// GetUserByHandle godoc
// @Summary Public profile
// @Tags Users
// @Produce json
// @Param handle path string true "Handle"
// @Success 200 {object} UserProfile
// @Failure 404 {object} utils.Payload
// @Router /api/users/{handle} [get]
func (h *Handler) GetUserByHandle(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolver.FindByHandle(r.Context(), r.PathValue("handle"))
	if errors.Is(err, services.ErrUserNotFound) {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, r, "get user failed", err)
		return
	}

	utils.JSON(w, http.StatusOK, profile(user))
}

// ListCreators godoc
// @Summary Top creators
// @Description Up to ten creators ordered by follower count
// @Tags Users
// @Produce json
// @Success 200 {array} UserProfile
// @Router /api/users [get]
func (h *Handler) ListCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.resolver.TopCreators(r.Context(), topCreatorsLimit)
	if err != nil {
		h.serverError(w, r, "get creators failed", err)
		return
	}

	out := make([]UserProfile, 0, len(creators))
	for i := range creators {
		out = append(out, profile(&creators[i]))
	}
	utils.JSON(w, http.StatusOK, out)
}
