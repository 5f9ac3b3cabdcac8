// Package session keeps per-visitor browse and onboarding state for the HTTP
// API. Each visitor gets its own filter state, form and notice inbox.
package session

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/okian/artistly/pkg/metrics"
)

const (
	defaultMaxSessions = 5_000
	maxNotices         = 20
)

// Session is one visitor's state. Fields must only be touched inside Store.With.
type Session struct {
	ID        string
	CreatedAt time.Time
	Filters   *filter.State
	Form      *onboarding.Form
	Notices   []onboarding.Notice

	mu sync.Mutex
}

// Notify appends a notice, keeping only the newest few. It implements
// onboarding.Notifier and is called while the session lock is held.
func (s *Session) Notify(_ context.Context, n onboarding.Notice) {
	s.Notices = append(s.Notices, n)
	if len(s.Notices) > maxNotices {
		s.Notices = s.Notices[len(s.Notices)-maxNotices:]
	}
}

// DrainNotices returns and clears pending notices.
func (s *Session) DrainNotices() []onboarding.Notice {
	out := s.Notices
	s.Notices = nil
	if out == nil {
		out = []onboarding.Notice{}
	}
	return out
}

// Store is a bounded set of sessions. When full, the oldest session is
// evicted to make room.
type Store struct {
	vocab       *vocab.Vocabulary
	maxSessions int
	maxTerm     int
	formOpts    []onboarding.Option
	now         func() time.Time

	mu    sync.Mutex
	byID  map[string]*list.Element
	order *list.List // of *Session, oldest at front
}

// NewStore creates a session store validating against v.
func NewStore(v *vocab.Vocabulary, opts ...Option) *Store {
	s := &Store{
		vocab:       v,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
		byID:        make(map[string]*list.Element),
		order:       list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session. A non-empty seedCategory pre-selects that category
// once. An unknown seed is rejected and no session is created.
func (s *Store) Create(_ context.Context, seedCategory string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Filters:   filter.NewState(s.vocab, filter.WithMaxTermLength(s.maxTerm)),
	}
	formOpts := append(append([]onboarding.Option{}, s.formOpts...), onboarding.WithNotifier(sess))
	sess.Form = onboarding.NewForm(s.vocab, formOpts...)

	if _, err := sess.Filters.SeedCategory(seedCategory); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for s.order.Len() >= s.maxSessions {
		oldest := s.order.Front()
		delete(s.byID, oldest.Value.(*Session).ID)
		s.order.Remove(oldest)
	}
	s.byID[sess.ID] = s.order.PushBack(sess)
	n := s.order.Len()
	s.mu.Unlock()

	metrics.UpdateActiveSessions(n)
	return sess, nil
}

func (s *Store) lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*Session), true
}

// With runs fn with exclusive access to the session id.
func (s *Store) With(ctx context.Context, id string, fn func(*Session) error) error {
	sess, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// Delete ends a session. Unknown ids are ignored.
func (s *Store) Delete(_ context.Context, id string) {
	s.mu.Lock()
	if el, ok := s.byID[id]; ok {
		delete(s.byID, id)
		s.order.Remove(el)
	}
	n := s.order.Len()
	s.mu.Unlock()
	metrics.UpdateActiveSessions(n)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
