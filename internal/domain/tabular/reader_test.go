package tabular

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
)

func readAll(t *testing.T, r *Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestOpen_CSVQuotedCommasAndNewlines(t *testing.T) {
	in := "Customer,Project Information,Quote #\n" +
		"\"Acme, Inc.\",\"Wirebond\nsecond line\",Q-1\n" +
		"Beta,plain,Q-2\n"

	r, err := Open(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"Customer", "Project Information", "Quote #"}, r.Header())
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "Acme, Inc.", rows[0].Cells["Customer"])
	assert.Equal(t, "Wirebond\nsecond line", rows[0].Cells["Project Information"])
	assert.Equal(t, 2, rows[1].Number)
	assert.Equal(t, "Q-2", rows[1].Cells["Quote #"])
}

func TestOpen_HeadersKeptAsGiven(t *testing.T) {
	in := "\xEF\xBB\xBFCustomer, Quote # \nAcme,Q-1\n"

	r, err := Open(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	v, ok := rows[0].Get("Customer")
	assert.True(t, ok)
	assert.Equal(t, "Acme", v)
	_, ok = rows[0].Get(" Quote # ")
	assert.True(t, ok)
	_, ok = rows[0].Get("Quote #")
	assert.False(t, ok)
}

func TestOpen_WrongColumnCountPassesThrough(t *testing.T) {
	in := "A,B,C\n1\n1,2,3,4\n"

	r, err := Open(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"A": "1"}, rows[0].Cells)
	_, ok := rows[0].Get("B")
	assert.False(t, ok)
	assert.Equal(t, []string{"1", "2", "3", "4"}, rows[1].Values)
	assert.Len(t, rows[1].Cells, 3)
}

func TestOpen_BlankRowsSkippedButCounted(t *testing.T) {
	in := "A,B\n1,2\n,\n3,4\n"

	r, err := Open(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, 3, rows[1].Number)
}

func TestOpen_UTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.String("Customer\tQuote #\nAcmé\tQ-1\n")
	require.NoError(t, err)

	r, err := Open(strings.NewReader(raw), FormatTSV)
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acmé", rows[0].Cells["Customer"])
}

func TestOpen_Windows1252Cells(t *testing.T) {
	in := "Soci\xe9t\xe9,Details\nAcme,a\nSoci\xe9t\xe9 G\xe9n\xe9rale,caf\xe9 \x80 12\nGamma,d\n"

	r, err := Open(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"Société", "Details"}, r.Header())

	rows := readAll(t, r)
	require.Len(t, rows, 3)
	assert.Equal(t, "Société Générale", rows[1].Cells["Société"])
	assert.Equal(t, "café € 12", rows[1].Cells["Details"])
	assert.Equal(t, "Gamma", rows[2].Cells["Société"])
}

func TestOpen_UTF8CellsUntouched(t *testing.T) {
	r, err := Open(strings.NewReader("Customer\nSociété Générale\n"), FormatCSV)
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Société Générale", rows[0].Cells["Customer"])
}

func TestOpen_MalformedInput(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Open(strings.NewReader(""), FormatCSV)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
	})

	t.Run("read failure mid stream", func(t *testing.T) {
		src := io.MultiReader(strings.NewReader("A\nok\n"), iotest.ErrReader(errors.New("disk gone")))
		r, err := Open(src, FormatCSV)
		require.NoError(t, err)

		_, err = r.Next()
		require.NoError(t, err)
		_, err = r.Next()
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)

		_, err = r.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("blank header row", func(t *testing.T) {
		_, err := Open(strings.NewReader(",,\n1,2,3\n"), FormatCSV)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := Open(strings.NewReader("A,B\n"), FormatXLSX)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
	})
}

func TestOpen_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Customer", "Quote #"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Acme", "Q-1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Beta", "Q-2"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	r, err := Open(&buf, FormatXLSX)
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "Beta", rows[1].Cells["Customer"])
	assert.Equal(t, "Q-2", rows[1].Cells["Quote #"])
}

func TestSpool(t *testing.T) {
	t.Run("releases temp file", func(t *testing.T) {
		u, err := Spool(strings.NewReader("A,B\n1,2\n"), "orders.csv", 1024)
		require.NoError(t, err)
		path := u.Path

		_, err = os.Stat(path)
		require.NoError(t, err)
		assert.EqualValues(t, 8, u.Size)

		format, err := u.Format()
		require.NoError(t, err)
		assert.Equal(t, FormatCSV, format)

		require.NoError(t, u.Close())
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.NoError(t, u.Close())
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Spool(strings.NewReader(strings.Repeat("x", 20)), "big.csv", 10)
		assert.ErrorIs(t, err, ErrUploadTooLarge)
	})
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		mime     string
		want     Format
		wantErr  bool
	}{
		{name: "csv", filename: "a.csv", mime: "text/csv", want: FormatCSV},
		{name: "csv as plain text", filename: "a.CSV", mime: "text/plain; charset=utf-8", want: FormatCSV},
		{name: "utf16 text", filename: "a.txt", mime: "text/plain; charset=utf-16le", want: FormatCSV},
		{name: "tsv", filename: "a.tsv", mime: "text/plain", want: FormatTSV},
		{name: "xlsx by content", filename: "export", mime: xlsxMIME, want: FormatXLSX},
		{name: "xlsx as zip", filename: "a.xlsx", mime: "application/zip", want: FormatXLSX},
		{name: "pdf renamed", filename: "a.csv", mime: "application/pdf", wantErr: true},
		{name: "image", filename: "a.png", mime: "image/png", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(tc.filename, tc.mime)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
