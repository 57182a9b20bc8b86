package service

import (
	"context"
	"sync"
	"time"

	"iq-admin/internal/config"
	"iq-admin/internal/csvimport"
	"iq-admin/internal/domain"
	"iq-admin/internal/logger"
	"iq-admin/internal/util"
	"iq-admin/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultSessionTTL    = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// SessionManager is the in-memory registry of import sessions.
type SessionManager struct {
	catalog       TestCatalog
	backend       domain.QuestionBackend
	parser        *csvimport.Parser
	normalizer    *csvimport.Normalizer
	ttl           time.Duration
	sweepInterval time.Duration
	submitTimeout time.Duration
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*ImportSession
}

// NewSessionManager creates a manager. submitTimeout bounds each bulk upload.
func NewSessionManager(catalog TestCatalog, backend domain.QuestionBackend, v *validation.Validator, importCfg config.ImportConfig, submitTimeout time.Duration) *SessionManager {
	ttl := importCfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	sweep := importCfg.SweepInterval
	if sweep <= 0 {
		sweep = DefaultSweepInterval
	}
	return &SessionManager{
		catalog:       catalog,
		backend:       backend,
		parser:        csvimport.NewParser(importCfg.MaxRows),
		normalizer:    csvimport.NewNormalizer(v),
		ttl:           ttl,
		sweepInterval: sweep,
		submitTimeout: submitTimeout,
		now:           time.Now,
		sessions:      make(map[string]*ImportSession),
	}
}

// Open starts a new idle session for an existing test.
func (m *SessionManager) Open(ctx context.Context, testID string) (*ImportSession, error) {
	if testID == "" {
		return nil, domain.NewInvalidInputError("test id is required")
	}
	if _, err := m.catalog.GetTest(ctx, testID); err != nil {
		return nil, err
	}

	session := NewImportSession(util.NewULID(), testID, m.backend, SessionOptions{
		Parser:        m.parser,
		Normalizer:    m.normalizer,
		SubmitTimeout: m.submitTimeout,
		Clock:         m.now,
	})

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	logger.Get().Info("Import session opened", zap.String("sessionID", session.ID()), zap.String("testID", testID))
	return session, nil
}

// Get returns a live session.
func (m *SessionManager) Get(sessionID string) (*ImportSession, error) {
	if !validation.IsValidULID(sessionID) {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

// Discard cancels a session and forgets it.
func (m *SessionManager) Discard(sessionID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if !ok {
		return domain.NewSessionNotFoundError(sessionID)
	}
	session.Cancel()
	return nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep discards sessions untouched for longer than the TTL and returns
// how many were removed. Sessions that are submitting are kept.
func (m *SessionManager) Sweep(now time.Time) int {
	var expired []*ImportSession

	m.mu.Lock()
	for id, session := range m.sessions {
		last, expirable := session.idleSince()
		if expirable && now.Sub(last) > m.ttl {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		session.Cancel()
		logger.Get().Info("Import session expired", zap.String("sessionID", session.ID()), zap.String("testID", session.TestID()))
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done.
func (m *SessionManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
