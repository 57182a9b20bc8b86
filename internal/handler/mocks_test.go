package handler

import (
	"context"
	"io"
	"time"

	"iq-admin/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionBackend ---
type MockQuestionBackend struct {
	mock.Mock
}

func (m *MockQuestionBackend) AddQuestions(ctx context.Context, testID string, records []domain.QuestionRecord) (int, error) {
	args := m.Called(ctx, testID, records)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionBackend) ListQuestions(ctx context.Context, testID string) ([]domain.Question, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionBackend) UpdateQuestion(ctx context.Context, questionID string, input domain.QuestionInput) error {
	args := m.Called(ctx, questionID, input)
	return args.Error(0)
}

func (m *MockQuestionBackend) DeleteQuestion(ctx context.Context, questionID string) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

// --- MockTestBackend ---
type MockTestBackend struct {
	mock.Mock
}

func (m *MockTestBackend) ListTests(ctx context.Context) ([]domain.IQTest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IQTest), args.Error(1)
}

func (m *MockTestBackend) CreateTest(ctx context.Context, input domain.IQTestInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockTestBackend) UpdateTest(ctx context.Context, testID string, input domain.IQTestInput) error {
	args := m.Called(ctx, testID, input)
	return args.Error(0)
}

func (m *MockTestBackend) UpdateTestStatus(ctx context.Context, testID string, active bool) error {
	args := m.Called(ctx, testID, active)
	return args.Error(0)
}

// --- MockMediaUploader ---
type MockMediaUploader struct {
	mock.Mock
}

func (m *MockMediaUploader) UploadImage(ctx context.Context, fileName string, r io.Reader) (string, error) {
	args := m.Called(ctx, fileName, r)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
