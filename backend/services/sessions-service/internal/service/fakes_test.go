package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"billiardsone/backend/services/sessions-service/internal/models"
	"billiardsone/backend/services/sessions-service/internal/repository"
)

type memState struct {
	tables   map[uuid.UUID]models.Table
	sessions map[uuid.UUID]models.Session
	changes  []models.PlayerChange
	pricing  []models.PricingRule
	cafes    map[uuid.UUID]models.Cafe
}

func (s *memState) clone() *memState {
	c := &memState{
		tables:   make(map[uuid.UUID]models.Table, len(s.tables)),
		sessions: make(map[uuid.UUID]models.Session, len(s.sessions)),
		changes:  append([]models.PlayerChange(nil), s.changes...),
		pricing:  append([]models.PricingRule(nil), s.pricing...),
		cafes:    make(map[uuid.UUID]models.Cafe, len(s.cafes)),
	}
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.cafes {
		c.cafes[k] = v
	}
	return c
}

// memStore serializes transactions with one mutex and restores a snapshot
// when fn fails.
type memStore struct {
	mu    sync.Mutex
	state *memState

	failStatusUpdate bool
	commits          int
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		tables:   map[uuid.UUID]models.Table{},
		sessions: map[uuid.UUID]models.Session{},
		cafes:    map[uuid.UUID]models.Cafe{},
	}}
}

func (m *memStore) Repositories() Repositories {
	return m.repos(true)
}

func (m *memStore) repos(lock bool) Repositories {
	r := &memRepos{store: m, lock: lock}
	return Repositories{
		Tables:   r,
		Sessions: memSessions{r},
		Players:  memPlayers{r},
		Pricing:  memPricing{r},
		Cafes:    memCafes{r},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(ctx, m.repos(false)); err != nil {
		m.state = snapshot
		return err
	}
	m.commits++
	return nil
}

// memRepos is the table repository; the wrappers below embed it for the
// other ports. Outside a transaction each call takes the store lock itself.
type memRepos struct {
	store *memStore
	lock  bool
}

func (r *memRepos) with(fn func(s *memState) error) error {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	return fn(r.store.state)
}

func (r *memRepos) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var out *models.Table
	err := r.with(func(s *memState) error {
		t, ok := s.tables[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *memRepos) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return r.Get(ctx, id)
}

func (r *memRepos) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	if r.store.failStatusUpdate {
		return errors.New("status update failed")
	}
	return r.with(func(s *memState) error {
		t, ok := s.tables[id]
		if !ok {
			return repository.ErrNotFound
		}
		t.Status = status
		s.tables[id] = t
		return nil
	})
}

func (r *memRepos) ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.Table, error) {
	var out []models.Table
	err := r.with(func(s *memState) error {
		for _, t := range s.tables {
			if t.CafeID == cafeID {
				out = append(out, t)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

type memSessions struct{ *memRepos }

func (r memSessions) Create(ctx context.Context, session *models.Session) error {
	return r.with(func(s *memState) error {
		for _, existing := range s.sessions {
			if existing.TableID == session.TableID && existing.Open() {
				return repository.ErrDuplicate
			}
		}
		s.sessions[session.ID] = *session
		return nil
	})
}

func (r memSessions) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var out *models.Session
	err := r.with(func(s *memState) error {
		sess, ok := s.sessions[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &sess
		return nil
	})
	return out, err
}

func (r memSessions) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.Get(ctx, id)
}

func (r memSessions) GetForShare(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.Get(ctx, id)
}

func (r memSessions) Complete(ctx context.Context, id uuid.UUID, endTime time.Time, durationMinutes int) error {
	return r.with(func(s *memState) error {
		sess, ok := s.sessions[id]
		if !ok || !sess.Open() {
			return repository.ErrNotFound
		}
		sess.EndTime = &endTime
		sess.DurationMinutes = &durationMinutes
		s.sessions[id] = sess
		return nil
	})
}

func (r memSessions) OpenForTable(ctx context.Context, tableID uuid.UUID) (*models.Session, error) {
	var out *models.Session
	err := r.with(func(s *memState) error {
		for _, sess := range s.sessions {
			if sess.TableID == tableID && sess.Open() {
				sess := sess
				out = &sess
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

type memPlayers struct{ *memRepos }

func (r memPlayers) Append(ctx context.Context, change *models.PlayerChange) error {
	return r.with(func(s *memState) error {
		s.changes = append(s.changes, *change)
		return nil
	})
}

func (r memPlayers) Latest(ctx context.Context, sessionID uuid.UUID) (*models.PlayerChange, error) {
	changes, _ := r.ListBySession(ctx, sessionID)
	latest, ok := models.LatestChange(changes)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &latest, nil
}

func (r memPlayers) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.PlayerChange, error) {
	var out []models.PlayerChange
	err := r.with(func(s *memState) error {
		for _, c := range s.changes {
			if c.SessionID == sessionID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

type memPricing struct{ *memRepos }

func (r memPricing) Get(ctx context.Context, cafeID uuid.UUID, category models.TableCategory) (*models.PricingRule, error) {
	var out *models.PricingRule
	err := r.with(func(s *memState) error {
		for _, p := range s.pricing {
			if p.CafeID == cafeID && p.Category == category {
				p := p
				out = &p
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r memPricing) ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.PricingRule, error) {
	var out []models.PricingRule
	err := r.with(func(s *memState) error {
		for _, p := range s.pricing {
			if p.CafeID == cafeID {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

type memCafes struct{ *memRepos }

func (r memCafes) Get(ctx context.Context, id uuid.UUID) (*models.Cafe, error) {
	var out *models.Cafe
	err := r.with(func(s *memState) error {
		c, ok := s.cafes[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.TableEvent
}

func (p *recordingPublisher) Publish(event models.TableEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []models.TableEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.TableEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
