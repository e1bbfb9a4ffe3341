package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/identity"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

// WalletAuthRequest carries no validate tags; blank and malformed addresses
// are reported by the identity checks with their own messages.
type WalletAuthRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type WalletAuthResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      services.UserSummary `json:"user"`
}

type OnboardingStatusResponse struct {
	IsOnboarded bool `json:"isOnboarded"`
}

// WalletAuth godoc
// @Summary Sign in with a wallet address
// @Description Resolves the wallet to its user, creating it on first contact, and returns a 30-day bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body WalletAuthRequest true "Connected wallet"
// @Success 200 {object} WalletAuthResponse
// @Failure 400 {object} utils.Payload
// @Failure 429 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /api/auth/wallet-auth [post]
func (h *Handler) WalletAuth(w http.ResponseWriter, r *http.Request) {
	var req WalletAuthRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.sessions.WalletAuth(r.Context(), req.WalletAddress)
	switch {
	case errors.Is(err, identity.ErrAddressRequired):
		utils.Fail(w, http.StatusBadRequest, "Wallet address is required")
		return
	case errors.Is(err, identity.ErrInvalidAddress), errors.Is(err, identity.ErrBadChecksum):
		utils.Fail(w, http.StatusBadRequest, "Invalid wallet address")
		return
	case err != nil:
		h.serverError(w, r, "wallet auth failed", err)
		return
	}

	if session.Created {
		h.logger.Info("new wallet user", "user_id", session.User.ID, "wallet", session.User.WalletAddress)
	}

	utils.JSON(w, http.StatusOK, WalletAuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

// OnboardingStatus godoc
// @Summary Check whether a wallet's user finished onboarding
// @Tags Auth
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Success 200 {object} OnboardingStatusResponse
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/auth/onboarding-status [get]
func (h *Handler) OnboardingStatus(w http.ResponseWriter, r *http.Request) {
	walletAddress := strings.TrimSpace(r.URL.Query().Get("walletAddress"))
	if walletAddress == "" {
		utils.Fail(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	onboarded, err := h.onboarding.Status(r.Context(), walletAddress)
	switch {
	case errors.Is(err, identity.ErrInvalidAddress), errors.Is(err, identity.ErrBadChecksum):
		utils.Fail(w, http.StatusBadRequest, "Invalid wallet address")
		return
	case errors.Is(err, services.ErrUserNotFound):
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		h.serverError(w, r, "onboarding status failed", err)
		return
	}

	utils.JSON(w, http.StatusOK, OnboardingStatusResponse{IsOnboarded: onboarded})
}
