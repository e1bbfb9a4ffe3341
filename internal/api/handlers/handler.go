package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/models"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

type InterestLister interface {
	List(ctx context.Context) ([]models.Interest, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]models.Interest, error)
}

type MediaPresigner interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PublicURL(key string) string
}

// Deps are the collaborators the HTTP layer is built from. Media may be nil
// when no bucket is configured.
type Deps struct {
	Sessions    *services.Sessions
	Resolver    *services.UserResolver
	Onboarding  *services.Onboarding
	Interests   InterestLister
	Media       MediaPresigner
	Environment string
	Logger      *slog.Logger
}

type Handler struct {
	sessions    *services.Sessions
	resolver    *services.UserResolver
	onboarding  *services.Onboarding
	interests   InterestLister
	media       MediaPresigner
	environment string
	logger      *slog.Logger
	validator   *Validator
	now         func() time.Time
}

func New(d Deps) *Handler {
	return &Handler{
		sessions:    d.Sessions,
		resolver:    d.Resolver,
		onboarding:  d.Onboarding,
		interests:   d.Interests,
		media:       d.Media,
		environment: d.Environment,
		logger:      d.Logger,
		validator:   NewValidator(),
		now:         time.Now,
	}
}

// UserProfile is a stored user plus the derived onboarding flag.
type UserProfile struct {
	*models.User
	IsOnboarded bool `json:"isOnboarded"`
}

func profile(u *models.User) UserProfile {
	return UserProfile{User: u, IsOnboarded: services.IsOnboarded(u)}
}

// decodeAndValidate writes the 400 itself; callers just return on error.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Debug("failed to decode request", "path", r.URL.Path, "error", err)
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return false
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
			Errors:  FormatValidationError(err),
		})
		return false
	}
	return true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	utils.Fail(w, http.StatusInternalServerError, "Server error")
}
