package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// OptionCount is the fixed number of choices (A-D) of an IQ question.
	OptionCount = 4

	DefaultQuestionType = "logical"
	DefaultDifficulty   = "medium"
)

// OptionLabels maps a correct-answer index to the label shown to operators.
var OptionLabels = [OptionCount]string{"A", "B", "C", "D"}

// EntityID is an identifier assigned by the backend. The backend is not
// consistent about numeric vs string ids, so both decode into a string.
type EntityID string

func (id *EntityID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("entity id: %w", err)
		}
		*id = EntityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entity id: %w", err)
	}
	*id = EntityID(n.String())
	return nil
}

func (id EntityID) String() string {
	return string(id)
}

// RawRow is one non-blank data line of an uploaded CSV file.
type RawRow struct {
	Line  int      // 1-based line number in the source file
	Cells []string // arbitrary width; only the first 9 cells are read
}

// Cell returns the cell at index i, or "" when the row is shorter.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// QuestionRecord is the normalized form of a RawRow shown in the import preview.
// IsValid, RawCorrectAnswer, Line and Problems never leave this service.
type QuestionRecord struct {
	Line             int      `json:"line"`
	QuestionText     string   `json:"question_text"`
	Options          []string `json:"options"`
	CorrectAnswer    int      `json:"correct_answer"`
	RawCorrectAnswer string   `json:"raw_correct_answer"`
	QuestionType     string   `json:"question_type"`
	Difficulty       string   `json:"difficulty"`
	Explanation      string   `json:"explanation"`
	IsValid          bool     `json:"is_valid"`
	Problems         []string `json:"problems,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate preview state.
func (q QuestionRecord) Clone() QuestionRecord {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.Problems != nil {
		c.Problems = append([]string(nil), q.Problems...)
	}
	return c
}

// ValidRecords returns the valid subset of records in source order.
func ValidRecords(records []QuestionRecord) []QuestionRecord {
	valid := make([]QuestionRecord, 0, len(records))
	for _, r := range records {
		if r.IsValid {
			valid = append(valid, r)
		}
	}
	return valid
}

// CountValid returns how many records are valid.
func CountValid(records []QuestionRecord) int {
	n := 0
	for _, r := range records {
		if r.IsValid {
			n++
		}
	}
	return n
}

// Question is a question as stored by the backend for one test.
type Question struct {
	ID            EntityID `json:"id"`
	TestID        EntityID `json:"test_id,omitempty"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// CorrectLabel returns "A".."D", or "" when the index is out of range.
func (q Question) CorrectLabel() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return ""
	}
	return OptionLabels[q.CorrectAnswer]
}

// QuestionInput is the payload for creating or editing a single question.
type QuestionInput struct {
	QuestionText  string   `json:"question_text" label:"question" validate:"required"`
	QuestionType  string   `json:"question_type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options" label:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correct_answer" label:"correct answer" validate:"min=0,max=3"`
	Explanation   string   `json:"explanation"`
}

// ApplyDefaults fills the optional fields the way the admin form does.
func (in *QuestionInput) ApplyDefaults() {
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	if strings.TrimSpace(in.QuestionType) == "" {
		in.QuestionType = DefaultQuestionType
	}
	if strings.TrimSpace(in.Difficulty) == "" {
		in.Difficulty = DefaultDifficulty
	}
	for i := range in.Options {
		in.Options[i] = strings.TrimSpace(in.Options[i])
	}
}

// IQTest is a test/quiz entity that questions are attached to.
type IQTest struct {
	ID                EntityID `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Instructions      string   `json:"instructions"`
	TotalQuestions    int      `json:"total_questions"`
	TimeLimit         int      `json:"time_limit"` // seconds
	PointsPerQuestion int      `json:"points_per_question"`
	DifficultyLevel   string   `json:"difficulty_level"`
	IsActive          bool     `json:"is_active"`
}

// IQTestInput is the payload for creating or updating a test.
type IQTestInput struct {
	Title             string `json:"title" label:"title" validate:"required"`
	Description       string `json:"description"`
	Instructions      string `json:"instructions"`
	TotalQuestions    int    `json:"total_questions" label:"total questions" validate:"min=1"`
	TimeLimit         int    `json:"time_limit" label:"time limit" validate:"min=1"` // seconds
	PointsPerQuestion int    `json:"points_per_question" label:"points per question" validate:"min=0"`
	DifficultyLevel   string `json:"difficulty_level" label:"difficulty level" validate:"omitempty,oneof=easy medium hard"`
}
