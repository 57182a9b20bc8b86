package csvimport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"iq-admin/internal/domain"
)

// DefaultMaxRows caps the number of data rows accepted from one file.
const DefaultMaxRows = 1000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser turns delimited text into RawRows. The first non-blank record is
// the header and is discarded.
type Parser struct {
	maxRows int
}

// NewParser creates a Parser. maxRows <= 0 disables the row limit.
func NewParser(maxRows int) *Parser {
	return &Parser{maxRows: maxRows}
}

// ParseRows parses r with the default row limit.
func ParseRows(r io.Reader) ([]domain.RawRow, error) {
	return NewParser(DefaultMaxRows).Parse(context.Background(), r)
}

// CheckFileName rejects anything that is not named *.csv.
func CheckFileName(name string) error {
	if !strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".csv") {
		return domain.NewParseError("please upload a CSV file", nil).
			WithContext("file_name", name)
	}
	return nil
}

// Parse reads every record of r. Any structural or encoding problem fails
// the whole parse; rows are never returned alongside an error.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.RawRow, error) {
	br := bufio.NewReader(&contextReader{ctx: ctx, r: r})
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	rows := make([]domain.RawRow, 0)
	headerSeen := false
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadError(ctx, err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		for i, cell := range record {
			if !utf8.ValidString(cell) {
				return nil, domain.NewParseError(
					fmt.Sprintf("invalid UTF-8 text at line %d, column %d", line, i+1), nil).
					WithContext("line", line)
			}
		}

		if !headerSeen {
			headerSeen = true
			continue
		}
		if p.maxRows > 0 && len(rows) >= p.maxRows {
			return nil, domain.NewParseError(
				fmt.Sprintf("file has more than %d data rows", p.maxRows), nil).
				WithContext("max_rows", p.maxRows)
		}
		rows = append(rows, domain.RawRow{Line: line, Cells: record})
	}
	return rows, nil
}

func wrapReadError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.NewParseError("file read was interrupted", ctxErr)
	}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return domain.NewParseError(
			fmt.Sprintf("malformed CSV at line %d, column %d", csvErr.Line, csvErr.Column), err).
			WithContext("line", csvErr.Line)
	}
	return domain.NewParseError("failed to read file", err)
}

// isBlank reports whether a record came from an empty line. Lines holding
// only delimiters or spaces are kept so they show up as invalid rows.
func isBlank(record []string) bool {
	return len(record) == 0 || (len(record) == 1 && record[0] == "")
}

// contextReader stops a long read once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
