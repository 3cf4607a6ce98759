package tabular

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUploadTooLarge    = errors.New("upload exceeds size limit")
)

// Upload is an uploaded file held in temporary storage for the duration of a batch.
// Close removes the temporary file and must be called on every path.
type Upload struct {
	Filename string
	Path     string
	Size     int64
	MIME     string
}

// Spool copies src into a temp file, refusing anything larger than limit bytes
// (limit <= 0 disables the check).
func Spool(src io.Reader, filename string, limit int64) (*Upload, error) {
	tmp, err := os.CreateTemp("", "import-*"+filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	u := &Upload{Filename: filename, Path: tmp.Name()}

	r := src
	if limit > 0 {
		r = io.LimitReader(src, limit+1)
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = u.Close()
		return nil, err
	}
	if limit > 0 && n > limit {
		_ = u.Close()
		return nil, ErrUploadTooLarge
	}
	u.Size = n

	mt, err := mimetype.DetectFile(u.Path)
	if err != nil {
		_ = u.Close()
		return nil, err
	}
	u.MIME = mt.String()
	return u, nil
}

// Open opens the spooled content for reading.
func (u *Upload) Open() (*os.File, error) {
	return os.Open(u.Path)
}

// Format resolves the decoder from the file name and sniffed content type.
func (u *Upload) Format() (Format, error) {
	return DetectFormat(u.Filename, u.MIME)
}

// Close deletes the temporary file. Safe to call more than once.
func (u *Upload) Close() error {
	if u == nil || u.Path == "" {
		return nil
	}
	err := os.Remove(u.Path)
	u.Path = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// DetectFormat maps an extension and sniffed MIME type to a Format.
// Content wins over the extension when it is clearly a workbook or clearly not text.
func DetectFormat(filename, mime string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])

	if base == xlsxMIME {
		return FormatXLSX, nil
	}
	isText := base == "" || strings.HasPrefix(base, "text/")
	switch ext {
	case ".xlsx":
		if base == "application/zip" {
			return FormatXLSX, nil
		}
	case ".tsv":
		if isText {
			return FormatTSV, nil
		}
	case ".csv", ".txt", "":
		if isText {
			return FormatCSV, nil
		}
	}
	if base == "text/tab-separated-values" {
		return FormatTSV, nil
	}
	if base == "text/csv" {
		return FormatCSV, nil
	}
	return 0, ErrUnsupportedFormat
}
