package ioingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/rnc"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// source reads rows of a delimited registry export.
type source struct {
	path   string
	file   *os.File
	reader *csv.Reader
	// line is the last line read without error.
	line int
}

// openSource opens the file at path and prepares a row reader that decodes
// the configured encoding.
func openSource(path string, cfg config.ImportConfig) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, SourceNotFoundError(path, err)
		}
		return nil, SourceReadError(path, err)
	}

	stat, err := f.Stat()
	if err == nil && stat.IsDir() {
		f.Close()
		return nil, SourceReadError(path, fmt.Errorf("%s is a directory", path))
	}

	dec, err := newDecoder(cfg.Encoding)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := csv.NewReader(transform.NewReader(f, dec))
	r.Comma, _ = utf8.DecodeRuneInString(cfg.Delimiter)
	// rows with the wrong number of fields are counted, not fatal
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return &source{path: path, file: f, reader: r}, nil
}

// newDecoder returns a decoder of the source encoding. UTF-8 input may
// start with a byte order mark, it is removed. Invalid UTF-8 is an error,
// it is not replaced.
func newDecoder(enc string) (transform.Transformer, error) {
	switch enc {
	case "", "utf-8":
		return transform.Chain(
			encoding.UTF8Validator,
			unicode.UTF8BOM.NewDecoder(),
		), nil
	case "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, UnknownEncodingError(enc)
	}
}

// next returns the fields of the next row. It returns io.EOF at the end
// of the file and an error wrapping rnc.ErrMalformedRow for rows the
// reader could not split. Other errors are fatal read errors.
func (s *source) next() ([]string, error) {
	fields, err := s.reader.Read()
	if err == nil {
		s.line, _ = s.reader.FieldPos(len(fields) - 1)
		return fields, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, err
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, fmt.Errorf("line %d: %w: %w",
			parseErr.StartLine, rnc.ErrMalformedRow, parseErr.Err)
	}
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return nil, InvalidUTF8Error(s.path, s.line, err)
	}
	return nil, SourceReadError(s.path, err)
}

func (s *source) close() error {
	return s.file.Close()
}
