package sessions

import (
	"context"
	"sync"
	"time"

	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"
	"fedvlm/api/services/filtering"
	"fedvlm/api/services/metrics"
	"fedvlm/api/services/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one in-memory result view: a query orchestrator plus the
// user's node exclusions. Nothing about it outlives the process.
type Session struct {
	Id        uuid.UUID
	CreatedAt time.Time

	orchestrator *query.Orchestrator
	ctx          context.Context
	cancel       context.CancelFunc

	mu       sync.Mutex
	excluded filtering.ExclusionSet
	lastSeen time.Time
}

// Submit classifies and normalizes term, then resolves it. Moving to a
// different query key starts over with no exclusions.
func (s *Session) Submit(term string) (results.QueryKey, <-chan struct{}) {
	key := results.KeyForSearchTerm(term)
	return key, s.SubmitKey(key)
}

func (s *Session) SubmitKey(key results.QueryKey) <-chan struct{} {
	// the key check and the submission happen under one lock so the reset
	// always matches the key the orchestrator ends up with
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orchestrator.State().Key != key {
		s.excluded = filtering.ExcludeNone()
	}
	s.lastSeen = time.Now()

	return s.orchestrator.Submit(s.ctx, key)
}

func (s *Session) State() query.State {
	return s.orchestrator.State()
}

func (s *Session) Excluded() filtering.ExclusionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.excluded
}

func (s *Session) Toggle(nodeId string) filtering.ExclusionSet {
	return s.setExcluded(func(current filtering.ExclusionSet) filtering.ExclusionSet {
		return filtering.Toggle(current, nodeId)
	})
}

func (s *Session) ExcludeAll(registry *nodes.Registry) filtering.ExclusionSet {
	return s.setExcluded(func(filtering.ExclusionSet) filtering.ExclusionSet {
		return filtering.ExcludeAll(registry)
	})
}

func (s *Session) ExcludeNone() filtering.ExclusionSet {
	return s.setExcluded(func(filtering.ExclusionSet) filtering.ExclusionSet {
		return filtering.ExcludeNone()
	})
}

func (s *Session) setExcluded(next func(filtering.ExclusionSet) filtering.ExclusionSet) filtering.ExclusionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded = next(s.excluded)
	s.lastSeen = time.Now()
	return s.excluded
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type SessionService struct {
	client *query.Client
	logger *zap.SugaredLogger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessionService(client *query.Client, logger *zap.SugaredLogger) *SessionService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SessionService{
		client:   client,
		logger:   logger,
		sessions: map[uuid.UUID]*Session{},
	}
}

func (ss *SessionService) Create() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	s := &Session{
		Id:           uuid.New(),
		CreatedAt:    now,
		orchestrator: query.NewOrchestrator(ss.client),
		ctx:          ctx,
		cancel:       cancel,
		excluded:     filtering.ExcludeNone(),
		lastSeen:     now,
	}

	ss.mu.Lock()
	ss.sessions[s.Id] = s
	count := len(ss.sessions)
	ss.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	ss.logger.Debugw("session created", "sessionId", s.Id.String())
	return s
}

func (ss *SessionService) Get(id uuid.UUID) (*Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.sessions[id]
	return s, ok
}

// Delete cancels any fetch still running for the session.
func (ss *SessionService) Delete(id uuid.UUID) bool {
	ss.mu.Lock()
	s, ok := ss.sessions[id]
	if ok {
		delete(ss.sessions, id)
	}
	count := len(ss.sessions)
	ss.mu.Unlock()

	if ok {
		s.cancel()
		metrics.ActiveSessions.Set(float64(count))
	}
	return ok
}

// Expire deletes every session idle for longer than idleTimeout as of now.
func (ss *SessionService) Expire(idleTimeout time.Duration, now time.Time) []uuid.UUID {
	ss.mu.RLock()
	var stale []uuid.UUID
	for id, s := range ss.sessions {
		if now.Sub(s.LastSeen()) > idleTimeout {
			stale = append(stale, id)
		}
	}
	ss.mu.RUnlock()

	for _, id := range stale {
		ss.Delete(id)
	}
	return stale
}

func (ss *SessionService) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
