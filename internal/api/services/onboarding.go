package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/identity"
	"github.com/rohits-web03/vybr8r/internal/metrics"
	"github.com/rohits-web03/vybr8r/internal/models"
	"github.com/rohits-web03/vybr8r/internal/repositories"
)

// IsOnboarded applies the onboarding predicate to a stored user.
func IsOnboarded(u *models.User) bool {
	if u == nil {
		return false
	}
	return identity.IsOnboarded(models.Str(u.Username), models.Str(u.Handle))
}

// UserSummary is the view returned with a fresh session.
type UserSummary struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Username      *string   `json:"username"`
	Handle        *string   `json:"handle"`
	Avatar        string    `json:"avatar"`
	IsOnboarded   bool      `json:"isOnboarded"`
}

func Summarize(u *models.User) UserSummary {
	return UserSummary{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		Username:      u.Username,
		Handle:        u.Handle,
		Avatar:        u.Avatar,
		IsOnboarded:   IsOnboarded(u),
	}
}

// ProfileInput is what the onboarding form submits.
type ProfileInput struct {
	Username  string
	Handle    string
	Bio       *string
	Avatar    *string
	Banner    *string
	Interests []string
}

type Onboarding struct {
	store  UserStore
	logger *slog.Logger
}

func NewOnboarding(store UserStore, logger *slog.Logger) *Onboarding {
	return &Onboarding{store: store, logger: logger}
}

// Status reports whether the user behind rawAddress has finished onboarding.
func (o *Onboarding) Status(ctx context.Context, rawAddress string) (bool, error) {
	addr, err := identity.NormalizeAddress(rawAddress)
	if err != nil {
		return false, err
	}
	user, err := o.store.FindByWallet(ctx, addr)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}
	return IsOnboarded(user), nil
}

// Complete writes the profile for userID. A handle owned by another user is
// rejected before the write; the unique index catches the remaining race.
func (o *Onboarding) Complete(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	handle, err := identity.NormalizeHandle(in.Handle)
	if err != nil {
		return nil, err
	}

	owner, err := o.store.FindByHandle(ctx, handle)
	switch {
	case err == nil && owner.ID != userID:
		return nil, ErrHandleTaken
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("check handle: %w", err)
	}

	user, err := o.store.UpdateProfile(ctx, userID, repositories.ProfileUpdate{
		Username:  &username,
		Handle:    &handle,
		Bio:       in.Bio,
		Avatar:    in.Avatar,
		Banner:    in.Banner,
		Interests: in.Interests,
	})
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, ErrHandleTaken
	case errors.Is(err, repositories.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("update profile: %w", err)
	}

	metrics.OnboardingsCompleted.Inc()
	o.logger.Info("onboarding completed", "user_id", userID, "handle", handle)
	return user, nil
}
