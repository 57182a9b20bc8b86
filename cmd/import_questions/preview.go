package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"iq-admin/internal/domain"
	"iq-admin/internal/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxQuestionWidth = 48

var previewHeaders = []string{"Row", "Line", "Valid", "Question", "Answer", "Problems"}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	invalidStyle = cellStyle.Foreground(lipgloss.Color("203"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// previewRows converts normalized records into table cells.
func previewRows(records []domain.QuestionRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		valid := "yes"
		if !r.IsValid {
			valid = "no"
		}
		answer := r.RawCorrectAnswer
		if r.IsValid && r.CorrectAnswer >= 0 && r.CorrectAnswer < domain.OptionCount {
			answer = domain.OptionLabels[r.CorrectAnswer]
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Line),
			valid,
			truncate(r.QuestionText, maxQuestionWidth),
			answer,
			strings.Join(r.Problems, "; "),
		}
	}
	return rows
}

// renderPreview writes the preview table and a valid/invalid summary.
func renderPreview(w io.Writer, snap *service.Snapshot, noColor bool) {
	rows := previewRows(snap.Records)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(previewHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case !noColor && row >= 0 && row < len(rows) && rows[row][2] == "no":
				return invalidStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, t.Render())
	summary := fmt.Sprintf("%s: %d rows, %d valid, %d invalid",
		snap.FileName, len(snap.Records), snap.ValidCount, snap.InvalidCount)
	if noColor {
		fmt.Fprintln(w, summary)
		return
	}
	fmt.Fprintln(w, summaryStyle.Render(summary))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
