package csvimport

import (
	"strconv"
	"strings"

	"iq-admin/internal/domain"
	"iq-admin/internal/validation"
)

// Column positions within a data row.
const (
	colQuestion = iota
	colOptionA
	colOptionB
	colOptionC
	colOptionD
	colCorrectAnswer
	colQuestionType
	colDifficulty
	colExplanation
)

// requiredFields holds the trimmed values that decide row validity.
type requiredFields struct {
	QuestionText  string `label:"question" validate:"required"`
	OptionA       string `label:"option A" validate:"required"`
	OptionB       string `label:"option B" validate:"required"`
	OptionC       string `label:"option C" validate:"required"`
	OptionD       string `label:"option D" validate:"required"`
	CorrectAnswer string `label:"correct answer" validate:"required,integer"`
}

// Normalizer maps RawRows to QuestionRecords. It holds no per-row state and
// is safe for concurrent use.
type Normalizer struct {
	validator *validation.Validator
}

func NewNormalizer(v *validation.Validator) *Normalizer {
	if v == nil {
		v = validation.NewValidator()
	}
	return &Normalizer{validator: v}
}

var defaultNormalizer = NewNormalizer(nil)

// NormalizeRow maps one row with the package default Normalizer.
func NormalizeRow(row domain.RawRow) domain.QuestionRecord {
	return defaultNormalizer.Normalize(row)
}

// NormalizeRows maps rows in order with the package default Normalizer.
func NormalizeRows(rows []domain.RawRow) []domain.QuestionRecord {
	return defaultNormalizer.NormalizeAll(rows)
}

// Normalize maps a row to a record. A row that fails validation is still
// returned, with IsValid false and the reasons in Problems.
func (n *Normalizer) Normalize(row domain.RawRow) domain.QuestionRecord {
	cell := func(i int) string {
		return strings.TrimSpace(row.Cell(i))
	}

	rec := domain.QuestionRecord{
		Line:         row.Line,
		QuestionText: cell(colQuestion),
		Options: []string{
			cell(colOptionA),
			cell(colOptionB),
			cell(colOptionC),
			cell(colOptionD),
		},
		RawCorrectAnswer: cell(colCorrectAnswer),
		QuestionType:     orDefault(cell(colQuestionType), domain.DefaultQuestionType),
		Difficulty:       orDefault(cell(colDifficulty), domain.DefaultDifficulty),
		Explanation:      cell(colExplanation),
	}
	if answer, err := strconv.Atoi(rec.RawCorrectAnswer); err == nil {
		rec.CorrectAnswer = answer
	}

	errs := n.validator.Struct(requiredFields{
		QuestionText:  rec.QuestionText,
		OptionA:       rec.Options[0],
		OptionB:       rec.Options[1],
		OptionC:       rec.Options[2],
		OptionD:       rec.Options[3],
		CorrectAnswer: rec.RawCorrectAnswer,
	})
	rec.IsValid = len(errs) == 0
	rec.Problems = errs.Messages()
	return rec
}

// NormalizeAll maps every row independently, preserving order.
func (n *Normalizer) NormalizeAll(rows []domain.RawRow) []domain.QuestionRecord {
	records := make([]domain.QuestionRecord, len(rows))
	for i, row := range rows {
		records[i] = n.Normalize(row)
	}
	return records
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
