package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"iq-admin/internal/csvimport"
	"iq-admin/internal/domain"
	"iq-admin/internal/logger"

	"go.uber.org/zap"
)

// Snapshot is a consistent copy of an import session's state.
type Snapshot struct {
	SessionID    string                  `json:"session_id"`
	TestID       string                  `json:"test_id"`
	State        domain.ImportState      `json:"state"`
	FileName     string                  `json:"file_name,omitempty"`
	Records      []domain.QuestionRecord `json:"records"`
	ValidCount   int                     `json:"valid_count"`
	InvalidCount int                     `json:"invalid_count"`
	LastError    string                  `json:"last_error,omitempty"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// SubmitResult describes a completed bulk submission.
type SubmitResult struct {
	Submitted int               `json:"submitted"`
	Accepted  int               `json:"accepted"`
	Questions []domain.Question `json:"questions"`
	// RefreshError is set when the upload succeeded but the follow-up
	// question list could not be fetched.
	RefreshError string `json:"refresh_error,omitempty"`
}

// ImportSession is the bulk-import state machine for one test:
//
//	idle -> previewing   Load succeeds
//	previewing -> previewing   Load succeeds (preview replaced)
//	previewing -> submitting   Submit with at least one valid row
//	submitting -> idle   upload succeeds, or Cancel
//	submitting -> previewing   upload fails (preview kept)
//	any -> idle   Cancel, or Load fails to parse
//
// Every transition happens under mu. A generation counter is bumped by
// each Load, Submit and Cancel so that results of superseded work are
// dropped instead of applied.
type ImportSession struct {
	id            string
	testID        string
	backend       domain.QuestionBackend
	parser        *csvimport.Parser
	normalizer    *csvimport.Normalizer
	submitTimeout time.Duration
	now           func() time.Time

	mu         sync.Mutex
	state      domain.ImportState
	fileName   string
	records    []domain.QuestionRecord
	lastError  string
	updatedAt  time.Time
	generation uint64
	cancelLoad context.CancelFunc
}

// SessionOptions configures new import sessions.
type SessionOptions struct {
	Parser        *csvimport.Parser
	Normalizer    *csvimport.Normalizer
	SubmitTimeout time.Duration
	Clock         func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.Parser == nil {
		o.Parser = csvimport.NewParser(csvimport.DefaultMaxRows)
	}
	if o.Normalizer == nil {
		o.Normalizer = csvimport.NewNormalizer(nil)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// NewImportSession creates a session in the idle state.
func NewImportSession(id, testID string, backend domain.QuestionBackend, opts SessionOptions) *ImportSession {
	opts = opts.withDefaults()
	return &ImportSession{
		id:            id,
		testID:        testID,
		backend:       backend,
		parser:        opts.Parser,
		normalizer:    opts.Normalizer,
		submitTimeout: opts.SubmitTimeout,
		now:           opts.Clock,
		state:         domain.StateIdle,
		updatedAt:     opts.Clock(),
	}
}

func (s *ImportSession) ID() string     { return s.id }
func (s *ImportSession) TestID() string { return s.testID }

// State returns the current state.
func (s *ImportSession) State() domain.ImportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load parses and normalizes a newly selected file and replaces the
// preview with it. A Load started later wins over one still running.
func (s *ImportSession) Load(ctx context.Context, fileName string, r io.Reader) (*Snapshot, error) {
	s.mu.Lock()
	if s.state == domain.StateSubmitting {
		s.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}
	s.generation++
	gen := s.generation
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.mu.Unlock()
	defer cancel()

	var records []domain.QuestionRecord
	err := csvimport.CheckFileName(fileName)
	if err == nil {
		var rows []domain.RawRow
		if rows, err = s.parser.Parse(loadCtx, r); err == nil {
			records = s.normalizer.NormalizeAll(rows)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil, domain.ErrLoadSuperseded
	}
	s.cancelLoad = nil
	s.updatedAt = s.now()

	if err != nil {
		s.resetLocked()
		s.lastError = err.Error()
		logger.Get().Warn("Import file rejected",
			zap.String("sessionID", s.id),
			zap.String("testID", s.testID),
			zap.String("fileName", fileName),
			zap.Error(err))
		return nil, err
	}

	s.state = domain.StatePreviewing
	s.fileName = fileName
	s.records = records
	s.lastError = ""

	valid := domain.CountValid(records)
	logger.Get().Info("Import preview loaded",
		zap.String("sessionID", s.id),
		zap.String("testID", s.testID),
		zap.String("fileName", fileName),
		zap.Int("rows", len(records)),
		zap.Int("valid", valid))
	return s.snapshotLocked(), nil
}

// Submit sends the valid subset of the preview in a single request.
// On success the preview is cleared and the refreshed question list is
// returned. On failure the preview is left exactly as it was.
func (s *ImportSession) Submit(ctx context.Context) (*SubmitResult, error) {
	s.mu.Lock()
	switch s.state {
	case domain.StateSubmitting:
		s.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	case domain.StateIdle:
		s.mu.Unlock()
		return nil, domain.NewNoValidRowsError(0)
	}

	valid := domain.ValidRecords(s.records)
	if len(valid) == 0 {
		err := domain.NewNoValidRowsError(len(s.records))
		s.lastError = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.generation++
	gen := s.generation
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.state = domain.StateSubmitting
	s.lastError = ""
	s.updatedAt = s.now()
	payload := cloneRecords(valid)
	s.mu.Unlock()

	log := logger.Get().With(zap.String("sessionID", s.id), zap.String("testID", s.testID))
	log.Info("Submitting questions", zap.Int("count", len(payload)))

	submitCtx, cancel := s.withSubmitTimeout(ctx)
	accepted, err := s.backend.AddQuestions(submitCtx, s.testID, payload)
	cancel()
	if err != nil && !errors.Is(err, domain.ErrSubmission) {
		err = domain.NewSubmissionError("", err)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Info("Discarding result of cancelled submission", zap.Bool("succeeded", err == nil))
		return nil, domain.ErrImportCancelled
	}
	s.updatedAt = s.now()
	if err != nil {
		s.state = domain.StatePreviewing
		s.lastError = err.Error()
		s.mu.Unlock()
		log.Error("Bulk submission failed", zap.Error(err))
		return nil, err
	}
	s.resetLocked()
	s.mu.Unlock()

	log.Info("Bulk submission succeeded", zap.Int("submitted", len(payload)), zap.Int("accepted", accepted))

	result := &SubmitResult{Submitted: len(payload), Accepted: accepted}
	questions, refreshErr := s.backend.ListQuestions(ctx, s.testID)
	if refreshErr != nil {
		log.Warn("Failed to refresh question list after submission", zap.Error(refreshErr))
		result.RefreshError = refreshErr.Error()
		result.Questions = []domain.Question{}
		return result, nil
	}
	result.Questions = questions
	return result, nil
}

// Cancel returns the session to idle immediately and discards the preview.
// A submission still in flight keeps running but its outcome is ignored.
func (s *ImportSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.generation++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.resetLocked()
	s.updatedAt = s.now()

	logger.Get().Info("Import cancelled",
		zap.String("sessionID", s.id),
		zap.String("testID", s.testID),
		zap.String("from", string(prev)))
}

// Snapshot returns a copy of the current state.
func (s *ImportSession) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// idleSince reports when the session last changed and whether it may be
// expired now. A submitting session is never expired.
func (s *ImportSession) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt, s.state != domain.StateSubmitting
}

func (s *ImportSession) withSubmitTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.submitTimeout > 0 {
		return context.WithTimeout(ctx, s.submitTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *ImportSession) resetLocked() {
	s.state = domain.StateIdle
	s.fileName = ""
	s.records = nil
	s.lastError = ""
}

func (s *ImportSession) snapshotLocked() *Snapshot {
	valid := domain.CountValid(s.records)
	return &Snapshot{
		SessionID:    s.id,
		TestID:       s.testID,
		State:        s.state,
		FileName:     s.fileName,
		Records:      cloneRecords(s.records),
		ValidCount:   valid,
		InvalidCount: len(s.records) - valid,
		LastError:    s.lastError,
		UpdatedAt:    s.updatedAt,
	}
}

func cloneRecords(records []domain.QuestionRecord) []domain.QuestionRecord {
	out := make([]domain.QuestionRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
