package iqbackend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"iq-admin/internal/config"
	"iq-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.BackendConfig{BaseURL: server.URL + "/api/", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func validRecords() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			Line: 2, QuestionText: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0,
			RawCorrectAnswer: "0", QuestionType: "logical", Difficulty: "easy", Explanation: "e1", IsValid: true,
		},
		{
			Line: 3, QuestionText: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3,
			RawCorrectAnswer: "3", QuestionType: "verbal", Difficulty: "hard", IsValid: true,
		},
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(config.BackendConfig{BaseURL: "  "})
	assert.Error(t, err)

	_, err = NewClient(config.BackendConfig{BaseURL: "not a url"})
	assert.Error(t, err)

	client, err := NewClient(config.BackendConfig{BaseURL: "https://example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", client.baseURL)
	assert.Equal(t, config.DefaultBackendTimeout, client.timeout)
}

func TestClient_AddQuestions(t *testing.T) {
	t.Run("sends one request without preview fields", func(t *testing.T) {
		calls := 0
		var payload map[string][]map[string]interface{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/iq/admin/tests/42/questions", r.URL.Path)
			assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			writeJSON(w, http.StatusCreated, `{"success":true,"message":"created","data":{"count":2}}`)
		})

		n, err := client.AddQuestions(context.Background(), "42", validRecords())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, calls)

		require.Len(t, payload["questions"], 2)
		first := payload["questions"][0]
		assert.Equal(t, "Q1", first["question_text"])
		assert.Equal(t, float64(0), first["correct_answer"])
		assert.Equal(t, []interface{}{"a", "b", "c", "d"}, first["options"])
		for _, key := range []string{"is_valid", "line", "raw_correct_answer", "problems"} {
			assert.NotContains(t, first, key)
		}
	})

	t.Run("falls back to submitted count", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})

		n, err := client.AddQuestions(context.Background(), "42", validRecords())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("server error carries backend message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"success":false,"message":"duplicate question text"}`)
		})

		_, err := client.AddQuestions(context.Background(), "42", validRecords())
		require.ErrorIs(t, err, domain.ErrSubmission)
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "duplicate question text", de.Message)
	})

	t.Run("success false with 200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"error":"test is locked"}`)
		})

		_, err := client.AddQuestions(context.Background(), "42", validRecords())
		require.ErrorIs(t, err, domain.ErrSubmission)
		assert.Contains(t, err.Error(), "test is locked")
	})

	t.Run("plain text error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream unavailable")
		})

		_, err := client.AddQuestions(context.Background(), "42", validRecords())
		require.ErrorIs(t, err, domain.ErrSubmission)
		assert.Contains(t, err.Error(), "upstream unavailable")
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(time.Second):
			}
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.AddQuestions(ctx, "42", validRecords())
		require.ErrorIs(t, err, domain.ErrSubmission)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("expired context sends nothing", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.AddQuestions(ctx, "42", validRecords())
		assert.ErrorIs(t, err, domain.ErrSubmission)
		assert.Equal(t, 0, calls)
	})
}

func TestClient_ListQuestions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/iq/admin/tests/7/questions", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"questions":[
			{"id":11,"test_id":"7","question_text":"Q1","question_type":"logical","difficulty":"easy","options":["a","b","c","d"],"correct_answer":2,"explanation":""},
			{"id":"12","question_text":"Q2","options":["a","b","c","d"],"correct_answer":0}
		]}}`)
	})

	questions, err := client.ListQuestions(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, domain.EntityID("11"), questions[0].ID)
	assert.Equal(t, "C", questions[0].CorrectLabel())
	assert.Equal(t, domain.EntityID("12"), questions[1].ID)
}

func TestClient_ListQuestions_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":null}`)
	})

	questions, err := client.ListQuestions(context.Background(), "7")
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestClient_Tests(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/iq/admin/tests", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":1,"title":"Reasoning","time_limit":1800,"is_active":true}]}`)
		})

		tests, err := client.ListTests(context.Background())
		require.NoError(t, err)
		require.Len(t, tests, 1)
		assert.Equal(t, domain.EntityID("1"), tests[0].ID)
		assert.Equal(t, 1800, tests[0].TimeLimit)
		assert.True(t, tests[0].IsActive)
	})

	t.Run("create and update", func(t *testing.T) {
		var paths []string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.Method+" "+r.URL.Path)
			var body domain.IQTestInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Reasoning", body.Title)
			assert.Equal(t, 600, body.TimeLimit)
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})

		input := domain.IQTestInput{Title: "Reasoning", TotalQuestions: 10, TimeLimit: 600}
		require.NoError(t, client.CreateTest(context.Background(), input))
		require.NoError(t, client.UpdateTest(context.Background(), "3", input))
		assert.Equal(t, []string{"POST /api/iq/admin/tests", "PUT /api/iq/admin/tests/3"}, paths)
	})

	t.Run("status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/iq/admin/tests/3/status", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"is_active":false}`, string(body))
			writeJSON(w, http.StatusOK, `{"success":true}`)
		})

		require.NoError(t, client.UpdateTestStatus(context.Background(), "3", false))
	})

	t.Run("backend error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, `{"message":"maintenance"}`)
		})

		_, err := client.ListTests(context.Background())
		require.ErrorIs(t, err, domain.ErrBackend)
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "maintenance", de.Message)
		assert.Equal(t, http.StatusServiceUnavailable, de.Context["backend_status"])
	})
}

func TestClient_QuestionMutations(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/404") {
			writeJSON(w, http.StatusNotFound, `{"success":false,"message":"question not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	input := domain.QuestionInput{QuestionText: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1}
	require.NoError(t, client.UpdateQuestion(context.Background(), "9", input))
	require.NoError(t, client.DeleteQuestion(context.Background(), "9"))

	err := client.DeleteQuestion(context.Background(), "404")
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.CodeNotFound, de.Code)

	assert.Equal(t, []string{
		"PUT /api/iq/admin/questions/9",
		"DELETE /api/iq/admin/questions/9",
		"DELETE /api/iq/admin/questions/404",
	}, seen)
}
