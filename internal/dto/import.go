package dto

import (
	"time"

	"iq-admin/internal/domain"
)

// PreviewRow is one parsed CSV row as shown in the import preview.
// @Description One row of an import preview
type PreviewRow struct {
	Row              int      `json:"row"`  // 1-based position among data rows
	Line             int      `json:"line"` // line in the uploaded file
	QuestionText     string   `json:"question_text"`
	Options          []string `json:"options"`
	CorrectAnswer    int      `json:"correct_answer"`
	CorrectLabel     string   `json:"correct_label,omitempty"`
	RawCorrectAnswer string   `json:"raw_correct_answer"`
	QuestionType     string   `json:"question_type"`
	Difficulty       string   `json:"difficulty"`
	Explanation      string   `json:"explanation"`
	IsValid          bool     `json:"is_valid"`
	Problems         []string `json:"problems,omitempty"`
}

// NewPreviewRow converts a normalized record for display.
func NewPreviewRow(index int, r domain.QuestionRecord) PreviewRow {
	row := PreviewRow{
		Row:              index + 1,
		Line:             r.Line,
		QuestionText:     r.QuestionText,
		Options:          r.Options,
		CorrectAnswer:    r.CorrectAnswer,
		RawCorrectAnswer: r.RawCorrectAnswer,
		QuestionType:     r.QuestionType,
		Difficulty:       r.Difficulty,
		Explanation:      r.Explanation,
		IsValid:          r.IsValid,
		Problems:         r.Problems,
	}
	if r.IsValid && r.CorrectAnswer >= 0 && r.CorrectAnswer < domain.OptionCount {
		row.CorrectLabel = domain.OptionLabels[r.CorrectAnswer]
	}
	return row
}

// ImportSessionResponse is the state of an import session.
// @Description Import session state and preview
type ImportSessionResponse struct {
	SessionID    string       `json:"session_id"`
	TestID       string       `json:"test_id"`
	State        string       `json:"state" example:"previewing"`
	FileName     string       `json:"file_name,omitempty"`
	Rows         []PreviewRow `json:"rows"`
	ValidCount   int          `json:"valid_count"`
	InvalidCount int          `json:"invalid_count"`
	LastError    string       `json:"last_error,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// QuestionResponse is a question stored on the backend.
// @Description Stored question
type QuestionResponse struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	CorrectLabel  string   `json:"correct_label,omitempty"`
	Explanation   string   `json:"explanation"`
}

func NewQuestionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID.String(),
		QuestionText:  q.QuestionText,
		QuestionType:  q.QuestionType,
		Difficulty:    q.Difficulty,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		CorrectLabel:  q.CorrectLabel(),
		Explanation:   q.Explanation,
	}
}

func NewQuestionResponses(questions []domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionResponse(q)
	}
	return out
}

// SubmitImportResponse reports the outcome of a bulk submission.
// @Description Bulk submission result with the refreshed question list
type SubmitImportResponse struct {
	Submitted    int                `json:"submitted"`
	Accepted     int                `json:"accepted"`
	Questions    []QuestionResponse `json:"questions"`
	RefreshError string             `json:"refresh_error,omitempty"`
}

// QuestionRequest is the body for editing a single question.
// @Description Question edit request
type QuestionRequest struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func (r QuestionRequest) ToInput() domain.QuestionInput {
	return domain.QuestionInput{
		QuestionText:  r.QuestionText,
		QuestionType:  r.QuestionType,
		Difficulty:    r.Difficulty,
		Options:       append([]string(nil), r.Options...),
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
	}
}

// UploadResponse carries the public URL of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}
