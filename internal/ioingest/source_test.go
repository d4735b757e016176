package ioingest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/errcode"
	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func readAll(t *testing.T, src *source) [][]string {
	t.Helper()
	var res [][]string
	for {
		fields, err := src.next()
		if err == io.EOF {
			return res
		}
		require.NoError(t, err)
		res = append(res, fields)
	}
}

func TestOpenSource_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	_, err := openSource(path, config.New().Import)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestSourceNotFoundError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "source does not exist")
}

func TestOpenSource_Directory(t *testing.T) {
	_, err := openSource(t.TempDir(), config.New().Import)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestSourceReadError, gnErr.Code)
}

func TestOpenSource_UnknownEncoding(t *testing.T) {
	path := writeFile(t, []byte("a,b\n"))
	cfg := config.New().Import
	cfg.Encoding = "koi8-r"

	_, err := openSource(path, cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestUnknownEncodingError, gnErr.Code)
}

func TestSource_Decoding(t *testing.T) {
	tests := []struct {
		msg      string
		encoding string
		content  []byte
		name     string
	}{
		{
			msg:      "utf-8",
			encoding: "utf-8",
			content:  []byte("101,PEÑA\n"),
			name:     "PEÑA",
		},
		{
			msg:      "utf-8 with BOM",
			encoding: "utf-8",
			content:  append([]byte{0xEF, 0xBB, 0xBF}, []byte("101,PEÑA\n")...),
			name:     "PEÑA",
		},
		{
			msg:      "latin1",
			encoding: "latin1",
			content:  []byte("101,PE\xd1A\n"),
			name:     "PEÑA",
		},
		{
			msg:      "windows-1252",
			encoding: "windows-1252",
			content:  []byte("101,JOS\xc9 \x93EL CHINO\x94\n"),
			name:     "JOSÉ “EL CHINO”",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New().Import
			cfg.Encoding = v.encoding

			src, err := openSource(writeFile(t, v.content), cfg)
			require.NoError(t, err)
			defer src.close()

			rows := readAll(t, src)
			require.Len(t, rows, 1)
			assert.Equal(t, "101", rows[0][0])
			assert.Equal(t, v.name, rows[0][1])
		})
	}
}

func TestSource_Delimiter(t *testing.T) {
	cfg := config.New().Import
	cfg.Delimiter = "|"

	path := writeFile(t, []byte("101|ACME, S.R.L.|x\n102|\"B|C\"\n"))
	src, err := openSource(path, cfg)
	require.NoError(t, err)
	defer src.close()

	rows := readAll(t, src)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"101", "ACME, S.R.L.", "x"}, rows[0])
	assert.Equal(t, []string{"102", "B|C"}, rows[1])
}

func TestSource_VariableFields(t *testing.T) {
	path := writeFile(t, []byte("a,b,c\nd\ne,f\n"))
	src, err := openSource(path, config.New().Import)
	require.NoError(t, err)
	defer src.close()

	rows := readAll(t, src)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 1)
}

func TestOpenSource_NotFoundBeforeEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	cfg := config.New().Import
	cfg.Encoding = "koi8-r"

	_, err := openSource(path, cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestSourceNotFoundError, gnErr.Code)
}

func TestSource_InvalidUTF8(t *testing.T) {
	content := []byte("101,PEREZ\n102,PE\xd1A\n103,GOMEZ\n")
	src, err := openSource(writeFile(t, content), config.New().Import)
	require.NoError(t, err)
	defer src.close()

	fields, err := src.next()
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "PEREZ"}, fields)

	_, err = src.next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, rnc.ErrMalformedRow)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestInvalidUTF8Error, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, encoding.ErrInvalidUTF8)
	assert.Equal(t, []any{src.path, 1}, gnErr.Vars)
}

func TestSource_InvalidUTF8AsLatin1(t *testing.T) {
	cfg := config.New().Import
	cfg.Encoding = "latin1"

	content := []byte("101,PEREZ\n102,PE\xd1A\n")
	src, err := openSource(writeFile(t, content), cfg)
	require.NoError(t, err)
	defer src.close()

	rows := readAll(t, src)
	require.Len(t, rows, 2)
	assert.Equal(t, "PEÑA", rows[1][1])
}
