package iqbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"iq-admin/internal/config"
	"iq-admin/internal/domain"
	"iq-admin/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const maxErrorTextLen = 200

// Client talks to the remote IQ admin REST API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

var (
	_ domain.QuestionBackend = (*Client)(nil)
	_ domain.TestBackend     = (*Client)(nil)
	_ domain.MediaUploader   = (*Client)(nil)
)

// NewClient creates a client for cfg.BaseURL. Every request carries a
// deadline: the earlier of the context deadline and cfg.Timeout.
func NewClient(cfg config.BackendConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", base, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultBackendTimeout
	}
	return &Client{
		baseURL: base,
		timeout: timeout,
		http: &fiber.Client{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}, nil
}

// envelope is the one response schema every endpoint shares.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// response is a completed round trip before envelope checks.
type response struct {
	status int
	body   []byte
}

// failure describes a request that reached the backend but was refused,
// or never got an answer at all.
type failure struct {
	status  int
	message string
	cause   error
	timeout bool
}

func (f *failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", f.message, f.cause)
	}
	return f.message
}

func (f *failure) Unwrap() error { return f.cause }

func (c *Client) endpoint(format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return c.baseURL + fmt.Sprintf(format, escaped...)
}

// deadline returns the timeout to apply to one request.
func (c *Client) deadline(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := c.timeout
	if d, ok := ctx.Deadline(); ok {
		remaining := time.Until(d)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

// do sends the agent and decodes the envelope. data receives the envelope's
// data member when non-nil.
func (c *Client) do(ctx context.Context, a *fiber.Agent, data interface{}) (*envelope, error) {
	resp, err := c.send(ctx, a)
	if err != nil {
		return nil, err
	}
	return decode(resp, data)
}

// send executes a and classifies transport failures. Timeouts, whether from
// ctx or from the agent, come back as a failure with timeout set.
func (c *Client) send(ctx context.Context, a *fiber.Agent) (response, error) {
	timeout, err := c.deadline(ctx)
	if err != nil {
		fiber.ReleaseAgent(a)
		return response{}, &failure{message: "request was not sent", cause: err, timeout: errors.Is(err, context.DeadlineExceeded)}
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).Timeout(timeout)

	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		if errors.Is(err, fasthttp.ErrTimeout) {
			return response{}, &failure{message: "request timed out", cause: err, timeout: true}
		}
		return response{}, &failure{message: "backend unreachable", cause: err}
	}
	return response{status: status, body: body}, nil
}

func decode(resp response, data interface{}) (*envelope, error) {
	var env envelope
	jsonErr := json.Unmarshal(resp.body, &env)

	if resp.status < fiber.StatusOK || resp.status >= fiber.StatusMultipleChoices {
		return nil, &failure{status: resp.status, message: errorText(resp, &env, jsonErr)}
	}
	if jsonErr != nil {
		return nil, &failure{status: resp.status, message: "backend returned a malformed response", cause: jsonErr}
	}
	if env.Success != nil && !*env.Success {
		return nil, &failure{status: resp.status, message: errorText(resp, &env, nil)}
	}
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return nil, &failure{status: resp.status, message: "backend returned unexpected data", cause: err}
		}
	}
	return &env, nil
}

// errorText picks the most useful diagnostic the backend gave us.
func errorText(resp response, env *envelope, jsonErr error) string {
	if jsonErr == nil {
		if msg := strings.TrimSpace(env.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(env.Error); msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(resp.body)); text != "" && jsonErr != nil {
		if len(text) > maxErrorTextLen {
			text = text[:maxErrorTextLen] + "..."
		}
		return text
	}
	if resp.status > 0 {
		return fmt.Sprintf("backend responded with status %d", resp.status)
	}
	return ""
}

// backendError converts a transport failure into a domain error.
func backendError(op string, err error) error {
	var f *failure
	if !errors.As(err, &f) {
		return domain.NewBackendError(0, op+" failed", err)
	}
	logger.Get().Error("Backend request failed",
		zap.String("operation", op),
		zap.Int("status", f.status),
		zap.String("message", f.message),
		zap.Error(f.cause))
	if f.status == fiber.StatusNotFound {
		return domain.NewError(domain.CodeNotFound, f.message, f.cause)
	}
	return domain.NewBackendError(f.status, f.message, f.cause)
}

type questionPayload struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type addQuestionsRequest struct {
	Questions []questionPayload `json:"questions"`
}

type addQuestionsData struct {
	Count     *int              `json:"count"`
	Inserted  *int              `json:"inserted"`
	Questions []json.RawMessage `json:"questions"`
}

func (d addQuestionsData) created() (int, bool) {
	switch {
	case d.Count != nil:
		return *d.Count, true
	case d.Inserted != nil:
		return *d.Inserted, true
	case d.Questions != nil:
		return len(d.Questions), true
	}
	return 0, false
}

// AddQuestions creates all records with a single request. Any failure is a
// SubmissionError carrying the backend's message.
func (c *Client) AddQuestions(ctx context.Context, testID string, records []domain.QuestionRecord) (int, error) {
	payload := addQuestionsRequest{Questions: make([]questionPayload, len(records))}
	for i, r := range records {
		payload.Questions[i] = questionPayload{
			QuestionText:  r.QuestionText,
			QuestionType:  r.QuestionType,
			Difficulty:    r.Difficulty,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
			Explanation:   r.Explanation,
		}
	}

	a := c.http.Post(c.endpoint("/iq/admin/tests/%s/questions", testID)).JSON(payload)

	var data addQuestionsData
	if _, err := c.do(ctx, a, &data); err != nil {
		var f *failure
		if errors.As(err, &f) {
			logger.Get().Error("Bulk question upload failed",
				zap.String("testID", testID),
				zap.Int("questions", len(records)),
				zap.Int("status", f.status),
				zap.Error(err))
			if f.timeout {
				return 0, domain.NewSubmissionError("bulk upload timed out", err)
			}
			return 0, domain.NewSubmissionError(f.message, f.cause)
		}
		return 0, domain.NewSubmissionError("", err)
	}

	if n, ok := data.created(); ok {
		return n, nil
	}
	return len(records), nil
}

type questionList struct {
	Questions []domain.Question `json:"questions"`
}

// ListQuestions returns the questions stored for testID.
func (c *Client) ListQuestions(ctx context.Context, testID string) ([]domain.Question, error) {
	var data questionList
	if _, err := c.do(ctx, c.http.Get(c.endpoint("/iq/admin/tests/%s/questions", testID)), &data); err != nil {
		return nil, backendError("list questions", err)
	}
	if data.Questions == nil {
		return []domain.Question{}, nil
	}
	return data.Questions, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, questionID string, input domain.QuestionInput) error {
	a := c.http.Put(c.endpoint("/iq/admin/questions/%s", questionID)).JSON(input)
	if _, err := c.do(ctx, a, nil); err != nil {
		return backendError("update question", err)
	}
	return nil
}

func (c *Client) DeleteQuestion(ctx context.Context, questionID string) error {
	if _, err := c.do(ctx, c.http.Delete(c.endpoint("/iq/admin/questions/%s", questionID)), nil); err != nil {
		return backendError("delete question", err)
	}
	return nil
}

// ListTests returns every IQ test, active or not.
func (c *Client) ListTests(ctx context.Context) ([]domain.IQTest, error) {
	var tests []domain.IQTest
	if _, err := c.do(ctx, c.http.Get(c.endpoint("/iq/admin/tests")), &tests); err != nil {
		return nil, backendError("list tests", err)
	}
	if tests == nil {
		return []domain.IQTest{}, nil
	}
	return tests, nil
}

func (c *Client) CreateTest(ctx context.Context, input domain.IQTestInput) error {
	if _, err := c.do(ctx, c.http.Post(c.endpoint("/iq/admin/tests")).JSON(input), nil); err != nil {
		return backendError("create test", err)
	}
	return nil
}

func (c *Client) UpdateTest(ctx context.Context, testID string, input domain.IQTestInput) error {
	if _, err := c.do(ctx, c.http.Put(c.endpoint("/iq/admin/tests/%s", testID)).JSON(input), nil); err != nil {
		return backendError("update test", err)
	}
	return nil
}

func (c *Client) UpdateTestStatus(ctx context.Context, testID string, active bool) error {
	body := struct {
		IsActive bool `json:"is_active"`
	}{IsActive: active}
	if _, err := c.do(ctx, c.http.Put(c.endpoint("/iq/admin/tests/%s/status", testID)).JSON(body), nil); err != nil {
		return backendError("update test status", err)
	}
	return nil
}
