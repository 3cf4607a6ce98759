// Package tabular turns uploaded spreadsheets into an ordered stream of
// header→value rows.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format selects the decoder used for an upload.
type Format int

const (
	FormatCSV Format = iota
	FormatTSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// MalformedInputError means the input cannot be read as a table at all.
// It is fatal for the batch.
type MalformedInputError struct {
	Line   int
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input: " + e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func malformed(line int, reason string, err error) error {
	return &MalformedInputError{Line: line, Reason: reason, Err: err}
}

// Row is one data record keyed by the header exactly as it appeared in the file.
//
// Number is 1-based and counts data records after the header, so it matches
// what a user sees when they number rows below the header.
type Row struct {
	Number int
	Cells  map[string]string
	Values []string
}

// Get returns the cell under header and whether the header exists in the row.
func (r Row) Get(header string) (string, bool) {
	v, ok := r.Cells[header]
	return v, ok
}

type recordSource interface {
	read() ([]string, error)
	close() error
}

// Reader is a lazy, finite, non-restartable sequence of rows.
type Reader struct {
	header []string
	src    recordSource
	n      int
	done   bool
}

// Open reads the header row from r and prepares the row sequence.
func Open(r io.Reader, format Format) (*Reader, error) {
	var src recordSource
	var err error
	switch format {
	case FormatXLSX:
		src, err = newXLSXSource(r)
	case FormatTSV:
		src = newCSVSource(r, '\t')
	default:
		src = newCSVSource(r, ',')
	}
	if err != nil {
		return nil, err
	}

	header, err := src.read()
	if err != nil {
		_ = src.close()
		if errors.Is(err, io.EOF) {
			return nil, malformed(1, "missing header row", nil)
		}
		return nil, err
	}
	if isBlank(header) {
		_ = src.close()
		return nil, malformed(1, "missing header row", nil)
	}
	decodeCells(header)

	return &Reader{header: header, src: src}, nil
}

// Header returns the header row as given.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Next returns the next non-blank row, or io.EOF once the input is exhausted.
// Rows with a different column count than the header are passed through.
func (r *Reader) Next() (Row, error) {
	for !r.done {
		rec, err := r.src.read()
		if errors.Is(err, io.EOF) {
			r.done = true
			break
		}
		if err != nil {
			r.done = true
			return Row{}, err
		}
		r.n++
		if isBlank(rec) {
			continue
		}
		decodeCells(rec)
		return r.row(rec), nil
	}
	return Row{}, io.EOF
}

// Close releases the underlying decoder.
func (r *Reader) Close() error {
	r.done = true
	return r.src.close()
}

func (r *Reader) row(rec []string) Row {
	cells := make(map[string]string, len(r.header))
	for i, h := range r.header {
		if i >= len(rec) {
			break
		}
		if _, dup := cells[h]; dup {
			continue
		}
		cells[h] = rec[i]
	}
	return Row{Number: r.n, Cells: cells, Values: rec}
}

// decodeCells rewrites cells that are not UTF-8 as Windows-1252, the code page
// Excel writes CSV in on Western Windows locales. Latin-1 is a subset of it.
func decodeCells(rec []string) {
	for i, v := range rec {
		if utf8.ValidString(v) {
			continue
		}
		decoded, err := charmap.Windows1252.NewDecoder().String(v)
		if err != nil {
			decoded = strings.ToValidUTF8(v, "\uFFFD")
		}
		rec[i] = decoded
	}
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type csvSource struct {
	r *csv.Reader
}

// newCSVSource decodes UTF-8 (BOM optional) and UTF-16 with a BOM. Bytes
// without a BOM are passed through untouched and validated per record.
func newCSVSource(r io.Reader, comma rune) *csvSource {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	cr := csv.NewReader(bufio.NewReader(decoded))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return &csvSource{r: cr}
}

func (s *csvSource) read() ([]string, error) {
	rec, err := s.r.Read()
	if err == nil || errors.Is(err, io.EOF) {
		return rec, err
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return nil, malformed(perr.Line, "unparseable delimited text", perr.Err)
	}
	return nil, malformed(0, "read failed", err)
}

func (s *csvSource) close() error { return nil }

type xlsxSource struct {
	f    *excelize.File
	rows *excelize.Rows
}

func newXLSXSource(r io.Reader) (*xlsxSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, malformed(0, "unreadable workbook", err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, malformed(0, "workbook has no sheets", nil)
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, malformed(0, "unreadable sheet "+sheets[0], err)
	}
	return &xlsxSource{f: f, rows: rows}, nil
}

func (s *xlsxSource) read() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, malformed(0, "unreadable sheet row", err)
		}
		return nil, io.EOF
	}
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, malformed(0, "unreadable sheet row", err)
	}
	return cols, nil
}

func (s *xlsxSource) close() error {
	rerr := s.rows.Close()
	ferr := s.f.Close()
	if rerr != nil {
		return rerr
	}
	return ferr
}
