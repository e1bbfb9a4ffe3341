package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rohits-web03/vybr8r/internal/identity"
)

type State int

const (
	StateDisconnected State = iota
	StateConnectedUnauthenticated
	StatePendingOnboarding
	StateOnboarded
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnectedUnauthenticated:
		return "connected-unauthenticated"
	case StatePendingOnboarding:
		return "authenticated-pending-onboarding"
	case StateOnboarded:
		return "authenticated-onboarded"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the store's observable state.
type Snapshot struct {
	State         State
	WalletAddress string
	User          *User
	IsOnboarded   bool
	Busy          bool
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == StatePendingOnboarding || s.State == StateOnboarded
}

type API interface {
	SetToken(token string)
	WalletAuth(ctx context.Context, walletAddress string) Result[WalletAuthResponse]
	OnboardingStatus(ctx context.Context, walletAddress string) Result[bool]
	CompleteOnboarding(ctx context.Context, in ProfileInput) Result[User]
	CurrentUser(ctx context.Context) Result[User]
}

type EventType int

const (
	WalletConnected EventType = iota + 1
	WalletDisconnected
)

// WalletEvent is emitted by the wallet connection bridge.
type WalletEvent struct {
	Type    EventType
	Address string
}

// AuthStore holds the client session and its onboarding state. It only
// reports state; deciding what screen to show is up to the caller.
type AuthStore struct {
	api     API
	storage Storage
	logger  *slog.Logger

	mu         sync.Mutex
	snap       Snapshot
	connecting bool

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// NewAuthStore restores the persisted session without touching the network.
func NewAuthStore(api API, storage Storage, logger *slog.Logger) (*AuthStore, error) {
	persisted, err := storage.Load()
	if err != nil {
		return nil, err
	}

	s := &AuthStore{
		api:     api,
		storage: storage,
		logger:  logger,
		subs:    make(map[int]func(Snapshot)),
	}

	s.snap.IsOnboarded = persisted.OnboardingCompleted
	if persisted.AuthToken != "" {
		api.SetToken(persisted.AuthToken)
		s.snap.State = authenticatedState(persisted.OnboardingCompleted)
	}
	return s, nil
}

func authenticatedState(onboarded bool) State {
	if onboarded {
		return StateOnboarded
	}
	return StatePendingOnboarding
}

func (s *AuthStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *AuthStore) copyLocked() Snapshot {
	out := s.snap
	if s.snap.User != nil {
		u := *s.snap.User
		out.User = &u
	}
	return out
}

// ShouldPromptOnboarding is true for an authenticated user with no profile yet.
func (s *AuthStore) ShouldPromptOnboarding() bool {
	return s.Snapshot().State == StatePendingOnboarding
}

// Subscribe registers fn for every state change. The returned func removes it.
func (s *AuthStore) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// update applies fn under the lock and then notifies subscribers.
func (s *AuthStore) update(fn func(*Snapshot)) Snapshot {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.copyLocked()
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
	return snap
}

func (s *AuthStore) persist(state PersistedState) {
	if err := s.storage.Save(state); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
}

// Connect exchanges a wallet address for a session. On failure the previous
// state is kept and false is returned. A second Connect while one is running
// returns false immediately.
func (s *AuthStore) Connect(ctx context.Context, walletAddress string) bool {
	addr, err := identity.NormalizeAddress(walletAddress)
	if err != nil {
		s.logger.Warn("refusing to connect", "wallet", walletAddress, "error", err)
		return false
	}

	s.mu.Lock()
	if s.connecting {
		s.mu.Unlock()
		return false
	}
	s.connecting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.connecting = false
		s.mu.Unlock()
	}()

	s.update(func(snap *Snapshot) { snap.Busy = true })

	res := s.api.WalletAuth(ctx, addr)
	auth, ok := res.Value()
	if !ok {
		s.logger.Warn("wallet auth failed", "wallet", addr, "error", res.Err())
		s.update(func(snap *Snapshot) { snap.Busy = false })
		return false
	}

	s.api.SetToken(auth.Token)
	s.persist(PersistedState{AuthToken: auth.Token, OnboardingCompleted: auth.User.IsOnboarded})

	s.update(func(snap *Snapshot) {
		snap.Busy = false
		snap.WalletAddress = auth.User.WalletAddress
		snap.User = userFromSummary(auth.User)
		snap.IsOnboarded = auth.User.IsOnboarded
		snap.State = authenticatedState(auth.User.IsOnboarded)
	})
	return true
}

// CheckOnboardingStatus asks the server about walletAddress. The answer is
// recorded only when it is about the signed-in wallet; any other address is
// a plain lookup. Not found leaves the session pending onboarding.
func (s *AuthStore) CheckOnboardingStatus(ctx context.Context, walletAddress string) Result[bool] {
	res := s.api.OnboardingStatus(ctx, walletAddress)
	onboarded, ok := res.Value()
	if !ok {
		return res
	}

	addr, err := identity.NormalizeAddress(walletAddress)
	if err != nil {
		return res
	}

	applied := false
	s.update(func(snap *Snapshot) {
		if !snap.IsAuthenticated() || snap.WalletAddress != addr {
			return
		}
		snap.IsOnboarded = onboarded
		snap.State = authenticatedState(onboarded)
		applied = true
	})
	if applied {
		s.persistOnboarded(onboarded)
	}
	return res
}

// CompleteOnboarding submits the profile and moves pending to onboarded.
func (s *AuthStore) CompleteOnboarding(ctx context.Context, in ProfileInput) Result[User] {
	if !s.Snapshot().IsAuthenticated() {
		return Fail[User](&Error{Kind: KindUnauthenticated, Message: "connect a wallet first"})
	}

	res := s.api.CompleteOnboarding(ctx, in)
	user, ok := res.Value()
	if !ok {
		return res
	}

	s.update(func(snap *Snapshot) {
		snap.User = &user
		snap.IsOnboarded = true
		snap.State = StateOnboarded
	})
	s.persistOnboarded(true)
	return res
}

// FetchUser reloads the current user and re-derives the onboarding flag.
func (s *AuthStore) FetchUser(ctx context.Context) Result[User] {
	if !s.Snapshot().IsAuthenticated() {
		return Fail[User](&Error{Kind: KindUnauthenticated, Message: "not signed in"})
	}

	s.update(func(snap *Snapshot) { snap.Busy = true })
	res := s.api.CurrentUser(ctx)
	user, ok := res.Value()
	if !ok {
		s.update(func(snap *Snapshot) { snap.Busy = false })
		return res
	}

	onboarded := identity.IsOnboarded(deref(user.Username), deref(user.Handle))
	s.update(func(snap *Snapshot) {
		snap.Busy = false
		snap.User = &user
		snap.WalletAddress = user.WalletAddress
		snap.IsOnboarded = onboarded
		snap.State = authenticatedState(onboarded)
	})
	s.persistOnboarded(onboarded)
	return res
}

// Logout forgets the session locally. The server keeps no session state.
func (s *AuthStore) Logout() {
	s.api.SetToken("")
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear session", "error", err)
	}
	s.update(func(snap *Snapshot) {
		*snap = Snapshot{State: StateDisconnected}
	})
}

// Run applies wallet bridge events until ctx is done or events is closed.
func (s *AuthStore) Run(ctx context.Context, events <-chan WalletEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case WalletConnected:
				s.markConnected(ev.Address)
				s.Connect(ctx, ev.Address)
			case WalletDisconnected:
				s.Logout()
			default:
				s.logger.Debug("ignoring wallet event", "type", ev.Type)
			}
		}
	}
}

// markConnected records a wallet connection that has no session yet.
func (s *AuthStore) markConnected(address string) {
	s.update(func(snap *Snapshot) {
		if snap.State == StateDisconnected {
			snap.State = StateConnectedUnauthenticated
			snap.WalletAddress = address
		}
	})
}

func (s *AuthStore) persistOnboarded(onboarded bool) {
	persisted, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("failed to read session", "error", err)
		return
	}
	persisted.OnboardingCompleted = onboarded
	s.persist(persisted)
}

func userFromSummary(u UserSummary) *User {
	return &User{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		Username:      u.Username,
		Handle:        u.Handle,
		Avatar:        u.Avatar,
		IsOnboarded:   u.IsOnboarded,
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
