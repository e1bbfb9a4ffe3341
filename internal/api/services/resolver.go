package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rohits-web03/vybr8r/internal/identity"
	"github.com/rohits-web03/vybr8r/internal/metrics"
	"github.com/rohits-web03/vybr8r/internal/models"
	"github.com/rohits-web03/vybr8r/internal/repositories"
	"golang.org/x/sync/singleflight"
)

// UserStore is the persistence surface the identity services need.
type UserStore interface {
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, upd repositories.ProfileUpdate) (*models.User, error)
	ListCreators(ctx context.Context, limit int) ([]models.User, error)
}

// maxCreateAttempts bounds the insert/re-read loop on first contact.
const maxCreateAttempts = 3

// UserResolver maps wallet addresses to exactly one user row, creating it on
// first sight.
type UserResolver struct {
	store  UserStore
	group  singleflight.Group
	known  *expirable.LRU[uuid.UUID, struct{}]
	logger *slog.Logger
}

func NewUserResolver(store UserStore, cacheSize int, cacheTTL time.Duration, logger *slog.Logger) *UserResolver {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	return &UserResolver{
		store:  store,
		known:  expirable.NewLRU[uuid.UUID, struct{}](cacheSize, nil, cacheTTL),
		logger: logger,
	}
}

type resolved struct {
	user    *models.User
	created bool
}

// ResolveWallet returns the user for rawAddress, creating it if needed.
// created reports whether this call (or one it was collapsed with) inserted the row.
func (r *UserResolver) ResolveWallet(ctx context.Context, rawAddress string) (*models.User, bool, error) {
	addr, err := identity.NormalizeAddress(rawAddress)
	if err != nil {
		return nil, false, err
	}

	// Collapse concurrent first contacts inside this process; the unique index
	// covers the cross-process case.
	v, err, _ := r.group.Do(addr, func() (interface{}, error) {
		return r.lookupOrCreate(context.WithoutCancel(ctx), addr)
	})
	if err != nil {
		return nil, false, err
	}

	res := v.(resolved)
	user := *res.user
	return &user, res.created, nil
}

func (r *UserResolver) lookupOrCreate(ctx context.Context, addr string) (resolved, error) {
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		user, err := r.store.FindByWallet(ctx, addr)
		if err == nil {
			return resolved{user: user}, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return resolved{}, fmt.Errorf("lookup wallet: %w", err)
		}

		user = models.NewWalletUser(addr)
		err = r.store.Create(ctx, user)
		if err == nil {
			metrics.UsersCreated.Inc()
			r.known.Add(user.ID, struct{}{})
			r.logger.Info("created user on first wallet contact", "user_id", user.ID, "wallet", addr)
			return resolved{user: user, created: true}, nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return resolved{}, fmt.Errorf("create user: %w", err)
		}

		metrics.FirstContactRaces.Inc()
		r.logger.Debug("lost first-contact race, re-reading", "wallet", addr, "attempt", attempt)
	}
	return resolved{}, fmt.Errorf("create user: wallet %s still missing after %d attempts", addr, maxCreateAttempts)
}

func (r *UserResolver) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.store.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (r *UserResolver) FindByHandle(ctx context.Context, rawHandle string) (*models.User, error) {
	handle, err := identity.NormalizeHandle(rawHandle)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := r.store.FindByHandle(ctx, handle)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// Exists backs the credential check. Users are never deleted, so positive
// answers are cached.
func (r *UserResolver) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.known.Get(id); ok {
		return true, nil
	}
	ok, err := r.store.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		r.known.Add(id, struct{}{})
	}
	return ok, nil
}

// TopCreators returns the most followed creators.
func (r *UserResolver) TopCreators(ctx context.Context, limit int) ([]models.User, error) {
	return r.store.ListCreators(ctx, limit)
}
