package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohits-web03/vybr8r/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x00000000000000000000000000000000000000b0"

type fakeAPI struct {
	mu    sync.Mutex
	token string
	calls atomic.Int32

	walletAuth func(addr string) Result[WalletAuthResponse]
	status     func(addr string) Result[bool]
	complete   func(in ProfileInput) Result[User]
	current    func() Result[User]
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) WalletAuth(_ context.Context, addr string) Result[WalletAuthResponse] {
	f.calls.Add(1)
	return f.walletAuth(addr)
}

func (f *fakeAPI) OnboardingStatus(_ context.Context, addr string) Result[bool] {
	f.calls.Add(1)
	return f.status(addr)
}

func (f *fakeAPI) CompleteOnboarding(_ context.Context, in ProfileInput) Result[User] {
	f.calls.Add(1)
	return f.complete(in)
}

func (f *fakeAPI) CurrentUser(context.Context) Result[User] {
	f.calls.Add(1)
	return f.current()
}

func strPtr(s string) *string { return &s }

func authOK(onboarded bool) func(string) Result[WalletAuthResponse] {
	return func(addr string) Result[WalletAuthResponse] {
		return Ok(WalletAuthResponse{Token: "tok-" + addr[len(addr)-2:], User: UserSummary{ID: "u1", WalletAddress: addr, IsOnboarded: onboarded}})
	}
}

func newStore(t *testing.T, api API, storage Storage) *AuthStore {
	t.Helper()
	s, err := NewAuthStore(api, storage, logger.Discard())
	require.NoError(t, err)
	return s
}

func TestNewAuthStore_RestoresOnboardedWithoutNetwork(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api, NewMemoryStorage(PersistedState{AuthToken: "saved", OnboardingCompleted: true}))

	snap := s.Snapshot()
	assert.Equal(t, StateOnboarded, snap.State)
	assert.True(t, snap.IsOnboarded)
	assert.False(t, s.ShouldPromptOnboarding())
	assert.Equal(t, "saved", api.Token())
	assert.Zero(t, api.calls.Load())
}

func TestNewAuthStore_InitialStates(t *testing.T) {
	s := newStore(t, &fakeAPI{}, NewMemoryStorage(PersistedState{}))
	assert.Equal(t, StateDisconnected, s.Snapshot().State)

	s = newStore(t, &fakeAPI{}, NewMemoryStorage(PersistedState{AuthToken: "saved"}))
	assert.Equal(t, StatePendingOnboarding, s.Snapshot().State)
	assert.True(t, s.ShouldPromptOnboarding())
}

func TestConnect_NewUserPendingThenComplete(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{
		walletAuth: authOK(false),
		complete: func(in ProfileInput) Result[User] {
			return Ok(User{ID: "u1", WalletAddress: testWallet, Username: &in.Username, Handle: &in.Handle, IsOnboarded: true})
		},
	}
	s := newStore(t, api, storage)

	var seen []State
	unsubscribe := s.Subscribe(func(snap Snapshot) { seen = append(seen, snap.State) })
	defer unsubscribe()

	require.True(t, s.Connect(context.Background(), testWallet))
	assert.Equal(t, StatePendingOnboarding, s.Snapshot().State)
	assert.True(t, s.ShouldPromptOnboarding())
	assert.Equal(t, "tok-b0", api.Token())

	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{AuthToken: "tok-b0"}, persisted)

	res := s.CompleteOnboarding(context.Background(), ProfileInput{Username: "Bob", Handle: "bob"})
	require.True(t, res.IsOk())

	snap := s.Snapshot()
	assert.Equal(t, StateOnboarded, snap.State)
	assert.Equal(t, "Bob", *snap.User.Username)
	assert.False(t, s.ShouldPromptOnboarding())

	persisted, _ = storage.Load()
	assert.Equal(t, PersistedState{AuthToken: "tok-b0", OnboardingCompleted: true}, persisted)

	assert.Equal(t, StateOnboarded, seen[len(seen)-1])
}

func TestConnect_FailureKeepsPriorState(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{AuthToken: "old", OnboardingCompleted: true})
	api := &fakeAPI{walletAuth: func(string) Result[WalletAuthResponse] {
		return Fail[WalletAuthResponse](&Error{Kind: KindNetwork, Message: "server unreachable"})
	}}
	s := newStore(t, api, storage)
	before := s.Snapshot()

	assert.False(t, s.Connect(context.Background(), testWallet))

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, "old", api.Token())
	persisted, _ := storage.Load()
	assert.Equal(t, "old", persisted.AuthToken)
}

func TestConnect_RejectsMalformedAddressLocally(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api, NewMemoryStorage(PersistedState{}))

	assert.False(t, s.Connect(context.Background(), "not-a-wallet"))
	assert.Zero(t, api.calls.Load())
	assert.Equal(t, StateDisconnected, s.Snapshot().State)
}

func TestConnect_OverlappingCallsAreRejected(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	api := &fakeAPI{walletAuth: func(addr string) Result[WalletAuthResponse] {
		close(entered)
		<-release
		return authOK(true)(addr)
	}}
	s := newStore(t, api, NewMemoryStorage(PersistedState{}))

	done := make(chan bool)
	go func() { done <- s.Connect(context.Background(), testWallet) }()

	<-entered
	assert.True(t, s.Snapshot().Busy)
	assert.False(t, s.Connect(context.Background(), testWallet))
	close(release)

	assert.True(t, <-done)
	assert.Equal(t, int32(1), api.calls.Load())
	assert.Equal(t, StateOnboarded, s.Snapshot().State)
	assert.False(t, s.Snapshot().Busy)
}

func TestLogout_ClearsEverything(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{walletAuth: authOK(true)}
	s := newStore(t, api, storage)
	require.True(t, s.Connect(context.Background(), testWallet))

	s.Logout()

	assert.Equal(t, Snapshot{State: StateDisconnected}, s.Snapshot())
	assert.Empty(t, api.Token())
	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{}, persisted)
}

func TestCheckOnboardingStatus_SessionWallet(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{
		walletAuth: authOK(false),
		status:     func(string) Result[bool] { return Ok(true) },
	}
	s := newStore(t, api, storage)
	require.True(t, s.Connect(context.Background(), testWallet))
	require.Equal(t, StatePendingOnboarding, s.Snapshot().State)

	res := s.CheckOnboardingStatus(context.Background(), "  "+testWallet+" ")
	require.True(t, res.IsOk())
	assert.Equal(t, StateOnboarded, s.Snapshot().State)
	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{AuthToken: "tok-b0", OnboardingCompleted: true}, persisted)
}

func TestCheckOnboardingStatus_NotFoundKeepsPending(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{
		walletAuth: authOK(false),
		status: func(string) Result[bool] {
			return Fail[bool](&Error{Kind: KindNotFound, Status: 404, Message: "User not found"})
		},
	}
	s := newStore(t, api, storage)
	require.True(t, s.Connect(context.Background(), testWallet))

	res := s.CheckOnboardingStatus(context.Background(), testWallet)
	assert.Equal(t, KindNotFound, res.Err().Kind)
	assert.Equal(t, StatePendingOnboarding, s.Snapshot().State)
	assert.True(t, s.ShouldPromptOnboarding())
	persisted, _ := storage.Load()
	assert.False(t, persisted.OnboardingCompleted)
}

func TestCheckOnboardingStatus_OtherWalletIsLookupOnly(t *testing.T) {
	const otherWallet = "0x00000000000000000000000000000000000000c1"

	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{
		walletAuth: authOK(false),
		status:     func(string) Result[bool] { return Ok(true) },
	}
	s := newStore(t, api, storage)
	require.True(t, s.Connect(context.Background(), testWallet))

	onboarded, err := s.CheckOnboardingStatus(context.Background(), otherWallet).Unpack()
	require.NoError(t, err)
	assert.True(t, onboarded)

	snap := s.Snapshot()
	assert.Equal(t, StatePendingOnboarding, snap.State)
	assert.False(t, snap.IsOnboarded)
	assert.True(t, s.ShouldPromptOnboarding())
	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{AuthToken: "tok-b0"}, persisted)
}

func TestCheckOnboardingStatus_DisconnectedStoresNothing(t *testing.T) {
	storage := NewMemoryStorage(PersistedState{})
	api := &fakeAPI{status: func(string) Result[bool] { return Ok(true) }}
	s := newStore(t, api, storage)

	res := s.CheckOnboardingStatus(context.Background(), testWallet)
	require.True(t, res.IsOk())
	assert.Equal(t, StateDisconnected, s.Snapshot().State)
	assert.False(t, s.Snapshot().IsOnboarded)
	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{}, persisted)
}

func TestFetchUser_DerivesOnboarding(t *testing.T) {
	api := &fakeAPI{current: func() Result[User] {
		return Ok(User{ID: "u1", WalletAddress: testWallet, Username: strPtr("   "), Handle: strPtr("bob")})
	}}
	storage := NewMemoryStorage(PersistedState{AuthToken: "tok", OnboardingCompleted: true})
	s := newStore(t, api, storage)

	res := s.FetchUser(context.Background())
	require.True(t, res.IsOk())
	assert.Equal(t, StatePendingOnboarding, s.Snapshot().State)
	assert.Equal(t, testWallet, s.Snapshot().WalletAddress)

	persisted, _ := storage.Load()
	assert.Equal(t, PersistedState{AuthToken: "tok"}, persisted)
}

func TestUnauthenticatedOperations(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api, NewMemoryStorage(PersistedState{}))

	assert.Equal(t, KindUnauthenticated, s.FetchUser(context.Background()).Err().Kind)
	assert.Equal(t, KindUnauthenticated, s.CompleteOnboarding(context.Background(), ProfileInput{}).Err().Kind)
	assert.Zero(t, api.calls.Load())
}

func TestRun_AppliesWalletEvents(t *testing.T) {
	api := &fakeAPI{walletAuth: authOK(false)}
	s := newStore(t, api, NewMemoryStorage(PersistedState{}))

	states := make(chan State, 16)
	s.Subscribe(func(snap Snapshot) { states <- snap.State })

	events := make(chan WalletEvent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, events) }()

	events <- WalletEvent{Type: WalletConnected, Address: testWallet}
	assert.Equal(t, StateConnectedUnauthenticated, <-states)
	waitFor(t, states, StatePendingOnboarding)

	events <- WalletEvent{Type: WalletDisconnected}
	waitFor(t, states, StateDisconnected)

	close(events)
	require.NoError(t, <-errc)
}

func waitFor(t *testing.T, states <-chan State, want State) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-states:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("state %s never reached", want)
		}
	}
}
