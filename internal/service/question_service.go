package service

import (
	"context"
	"io"
	"strings"

	"iq-admin/internal/domain"
	"iq-admin/internal/logger"
	"iq-admin/internal/validation"

	"go.uber.org/zap"
)

// QuestionService manages questions that already exist on the backend.
type QuestionService interface {
	ListQuestions(ctx context.Context, testID string) ([]domain.Question, error)
	UpdateQuestion(ctx context.Context, questionID string, input domain.QuestionInput) error
	DeleteQuestion(ctx context.Context, questionID string) error
	UploadImage(ctx context.Context, fileName string, r io.Reader) (string, error)
}

type questionServiceImpl struct {
	backend   domain.QuestionBackend
	media     domain.MediaUploader
	validator *validation.Validator
}

func NewQuestionService(backend domain.QuestionBackend, media domain.MediaUploader, v *validation.Validator) QuestionService {
	if v == nil {
		v = validation.NewValidator()
	}
	return &questionServiceImpl{backend: backend, media: media, validator: v}
}

func (s *questionServiceImpl) ListQuestions(ctx context.Context, testID string) ([]domain.Question, error) {
	if strings.TrimSpace(testID) == "" {
		return nil, domain.NewInvalidInputError("test id is required")
	}
	return s.backend.ListQuestions(ctx, testID)
}

func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, questionID string, input domain.QuestionInput) error {
	if strings.TrimSpace(questionID) == "" {
		return domain.NewInvalidInputError("question id is required")
	}
	input.ApplyDefaults()
	if errs := s.validator.Struct(input); errs != nil {
		return errs
	}
	if err := s.backend.UpdateQuestion(ctx, questionID, input); err != nil {
		return err
	}
	logger.Get().Info("Question updated", zap.String("questionID", questionID))
	return nil
}

func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, questionID string) error {
	if strings.TrimSpace(questionID) == "" {
		return domain.NewInvalidInputError("question id is required")
	}
	if err := s.backend.DeleteQuestion(ctx, questionID); err != nil {
		return err
	}
	logger.Get().Info("Question deleted", zap.String("questionID", questionID))
	return nil
}

func (s *questionServiceImpl) UploadImage(ctx context.Context, fileName string, r io.Reader) (string, error) {
	link, err := s.media.UploadImage(ctx, fileName, r)
	if err != nil {
		return "", err
	}
	logger.Get().Info("Image uploaded", zap.String("fileName", fileName), zap.String("url", link))
	return link, nil
}
