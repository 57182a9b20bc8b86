package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"iq-admin/internal/domain"
	"iq-admin/internal/dto"
	"iq-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestTestHandler_ListTests(t *testing.T) {
	env := newTestEnv(t, nil)
	env.knownTests("1", "2")

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/tests", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tests := decodeBody[[]dto.TestResponse](t, resp)
	require.Len(t, tests, 2)
	assert.Equal(t, "1", tests[0].ID)
	assert.Equal(t, 20.0, tests[0].TimeLimitMinutes)
}

func TestTestHandler_CreateTest(t *testing.T) {
	t.Run("minutes are stored as seconds", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.tests.On("CreateTest", mock.Anything, domain.IQTestInput{
			Title:          "Spatial",
			TotalQuestions: 20,
			TimeLimit:      90,
		}).Return(nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/tests",
			`{"title":"Spatial","total_questions":20,"time_limit":1.5}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		env.tests.AssertExpectations(t)
	})

	t.Run("validation errors", func(t *testing.T) {
		env := newTestEnv(t, nil)

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/tests", `{"total_questions":0,"time_limit":0}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody[middleware.ValidationErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.NotEmpty(t, body.Errors)
		env.tests.AssertNotCalled(t, "CreateTest", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t, nil)
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/tests", `{"title":`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("backend failure", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.tests.On("CreateTest", mock.Anything, mock.Anything).
			Return(domain.NewBackendError(500, "database unavailable", nil)).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/tests",
			`{"title":"Spatial","total_questions":20,"time_limit":30}`))
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		body := decodeBody[middleware.ErrorResponse](t, resp)
		assert.Equal(t, "BACKEND_ERROR", body.Code)
	})
}

func TestTestHandler_UpdateTest(t *testing.T) {
	env := newTestEnv(t, nil)
	env.tests.On("UpdateTest", mock.Anything, "7", mock.MatchedBy(func(in domain.IQTestInput) bool {
		return in.TimeLimit == 1800 && in.DifficultyLevel == "hard"
	})).Return(nil).Once()

	resp := env.do(t, jsonRequest(http.MethodPut, "/api/tests/7",
		`{"title":"Reasoning","total_questions":30,"time_limit":30,"difficulty_level":"hard"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env.tests.AssertExpectations(t)
}

func TestTestHandler_SetTestStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	env.tests.On("UpdateTestStatus", mock.Anything, "7", false).Return(nil).Once()

	resp := env.do(t, jsonRequest(http.MethodPut, "/api/tests/7/status", `{"is_active":false}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, jsonRequest(http.MethodPut, "/api/tests/7/status", `{}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env.tests.AssertExpectations(t)
}

func TestTestHandler_ListTestQuestions(t *testing.T) {
	env := newTestEnv(t, nil)
	env.questions.On("ListQuestions", mock.Anything, "7").Return([]domain.Question{
		{ID: "11", QuestionText: "Which shape comes next?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
	}, nil).Once()
	env.questions.On("ListQuestions", mock.Anything, "8").Return(nil, errors.New("connection refused")).Once()

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/tests/7/questions", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions := decodeBody[[]dto.QuestionResponse](t, resp)
	require.Len(t, questions, 1)
	assert.Equal(t, "D", questions[0].CorrectLabel)

	resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/tests/8/questions", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
