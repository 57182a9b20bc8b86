package dto

import (
	"math"

	"iq-admin/internal/domain"
)

// TestRequest is the body for creating or updating an IQ test. The time
// limit is edited in minutes and stored by the backend in seconds.
// @Description IQ test create/update request
type TestRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Instructions      string  `json:"instructions"`
	TotalQuestions    int     `json:"total_questions"`
	TimeLimitMinutes  float64 `json:"time_limit" example:"30"`
	PointsPerQuestion int     `json:"points_per_question"`
	DifficultyLevel   string  `json:"difficulty_level" example:"medium"`
}

func (r TestRequest) ToInput() domain.IQTestInput {
	return domain.IQTestInput{
		Title:             r.Title,
		Description:       r.Description,
		Instructions:      r.Instructions,
		TotalQuestions:    r.TotalQuestions,
		TimeLimit:         MinutesToSeconds(r.TimeLimitMinutes),
		PointsPerQuestion: r.PointsPerQuestion,
		DifficultyLevel:   r.DifficultyLevel,
	}
}

// TestResponse is an IQ test with its time limit in minutes.
// @Description IQ test
type TestResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Instructions      string  `json:"instructions"`
	TotalQuestions    int     `json:"total_questions"`
	TimeLimitMinutes  float64 `json:"time_limit"`
	PointsPerQuestion int     `json:"points_per_question"`
	DifficultyLevel   string  `json:"difficulty_level"`
	IsActive          bool    `json:"is_active"`
}

func NewTestResponse(t domain.IQTest) TestResponse {
	return TestResponse{
		ID:                t.ID.String(),
		Title:             t.Title,
		Description:       t.Description,
		Instructions:      t.Instructions,
		TotalQuestions:    t.TotalQuestions,
		TimeLimitMinutes:  SecondsToMinutes(t.TimeLimit),
		PointsPerQuestion: t.PointsPerQuestion,
		DifficultyLevel:   t.DifficultyLevel,
		IsActive:          t.IsActive,
	}
}

func NewTestResponses(tests []domain.IQTest) []TestResponse {
	out := make([]TestResponse, len(tests))
	for i, t := range tests {
		out[i] = NewTestResponse(t)
	}
	return out
}

// TestStatusRequest toggles whether a test is offered to candidates.
type TestStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func MinutesToSeconds(minutes float64) int {
	return int(math.Round(minutes * 60))
}

func SecondsToMinutes(seconds int) float64 {
	return float64(seconds) / 60
}
