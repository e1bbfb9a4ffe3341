package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/models"
)

// MemoryStore keeps users and interests in process memory with the same
// uniqueness rules as the Postgres schema. It backs local development without
// a database and the service tests.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*models.User
	byWallet      map[string]uuid.UUID
	byHandle      map[string]uuid.UUID
	interests     map[string]models.Interest // by name
	userInterests map[uuid.UUID][]string
	tokens        map[uuid.UUID]models.CreatorToken // by user id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uuid.UUID]*models.User),
		byWallet:      make(map[string]uuid.UUID),
		byHandle:      make(map[string]uuid.UUID),
		interests:     make(map[string]models.Interest),
		userInterests: make(map[uuid.UUID][]string),
		tokens:        make(map[uuid.UUID]models.CreatorToken),
	}
}

func (m *MemoryStore) snapshot(id uuid.UUID) *models.User {
	u := *m.users[id]
	if tok, ok := m.tokens[id]; ok {
		u.Token = &tok
	}
	return &u
}

func (m *MemoryStore) FindByWallet(_ context.Context, walletAddress string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byWallet[walletAddress]
	if !ok {
		return nil, ErrNotFound
	}
	return m.snapshot(id), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.users[id]; !ok {
		return nil, ErrNotFound
	}
	return m.snapshot(id), nil
}

func (m *MemoryStore) FindByHandle(_ context.Context, handle string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byHandle[handle]
	if !ok {
		return nil, ErrNotFound
	}
	return m.snapshot(id), nil
}

func (m *MemoryStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *MemoryStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, ok := m.byWallet[user.WalletAddress]; ok {
		return ErrDuplicate
	}
	if h := models.Str(user.Handle); h != "" {
		if _, ok := m.byHandle[h]; ok {
			return ErrDuplicate
		}
	}
	if _, ok := m.users[user.ID]; ok {
		return ErrDuplicate
	}

	stored := *user
	stored.Token = nil
	stored.Interests = nil
	m.users[user.ID] = &stored
	m.byWallet[user.WalletAddress] = user.ID
	if h := models.Str(user.Handle); h != "" {
		m.byHandle[h] = user.ID
	}
	return nil
}

func (m *MemoryStore) UpdateProfile(_ context.Context, id uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Handle != nil {
		if owner, taken := m.byHandle[*upd.Handle]; taken && owner != id {
			return nil, ErrDuplicate
		}
		if old := models.Str(u.Handle); old != "" {
			delete(m.byHandle, old)
		}
		h := *upd.Handle
		u.Handle = &h
		m.byHandle[h] = id
	}
	if upd.Username != nil {
		v := *upd.Username
		u.Username = &v
	}
	if upd.Bio != nil {
		v := *upd.Bio
		u.Bio = &v
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Banner != nil {
		u.Banner = *upd.Banner
	}
	for _, name := range upd.Interests {
		if _, known := m.interests[name]; !known || containsString(m.userInterests[id], name) {
			continue
		}
		m.userInterests[id] = append(m.userInterests[id], name)
	}
	return m.snapshot(id), nil
}

func (m *MemoryStore) ListCreators(_ context.Context, limit int) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.User
	for id, u := range m.users {
		if u.IsCreator {
			out = append(out, *m.snapshot(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Followers > out[j].Followers })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns how many users are stored.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// LinkToken attaches a creator token to a user and flags them as a creator.
func (m *MemoryStore) LinkToken(userID uuid.UUID, token models.CreatorToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.UserID = userID
	m.tokens[userID] = token
	u.IsCreator = true
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Interest, 0, len(m.interests))
	for _, i := range m.interests {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) ForUser(_ context.Context, userID uuid.UUID) ([]models.Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.users[userID]; !ok {
		return nil, ErrNotFound
	}
	out := []models.Interest{}
	for _, name := range m.userInterests[userID] {
		out = append(out, m.interests[name])
	}
	return out, nil
}

func (m *MemoryStore) SeedDefaults(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.interests) > 0 {
		return 0, nil
	}
	for _, i := range DefaultInterests {
		i.ID = uuid.New()
		m.interests[i.Name] = i
	}
	return len(DefaultInterests), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
