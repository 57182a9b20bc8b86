package domain

import (
	"context"
	"io"
)

// ImportState is the state of one bulk-import session.
type ImportState string

const (
	StateIdle       ImportState = "idle"
	StatePreviewing ImportState = "previewing"
	StateSubmitting ImportState = "submitting"
)

// QuestionBackend is the port to the remote question endpoints.
type QuestionBackend interface {
	// AddQuestions creates all records in one request and returns the count
	// the backend reports as created (or len(records) if it reports none).
	AddQuestions(ctx context.Context, testID string, records []QuestionRecord) (int, error)

	// ListQuestions returns the authoritative question list of a test.
	ListQuestions(ctx context.Context, testID string) ([]Question, error)

	UpdateQuestion(ctx context.Context, questionID string, input QuestionInput) error

	DeleteQuestion(ctx context.Context, questionID string) error
}

// TestBackend is the port to the remote test endpoints.
type TestBackend interface {
	ListTests(ctx context.Context) ([]IQTest, error)
	CreateTest(ctx context.Context, input IQTestInput) error
	UpdateTest(ctx context.Context, testID string, input IQTestInput) error
	UpdateTestStatus(ctx context.Context, testID string, active bool) error
}

// MediaUploader is the port to the remote file-storage endpoint.
type MediaUploader interface {
	UploadImage(ctx context.Context, fileName string, r io.Reader) (string, error)
}
