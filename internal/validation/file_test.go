package validation

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidateFileAcceptsImage(t *testing.T) {
	header := formFile(t, "logo.png", pngMagic)
	assert.NoError(t, ValidateFile(header, ImageConstraints))
}

func TestValidateFileSizeLimit(t *testing.T) {
	header := &multipart.FileHeader{Filename: "logo.png", Size: ImageConstraints.MaxSize + 1}
	err := ValidateFile(header, ImageConstraints)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateFileExtension(t *testing.T) {
	header := &multipart.FileHeader{Filename: "logo.exe", Size: 10}
	err := ValidateFile(header, ImageConstraints)
	assert.ErrorIs(t, err, ErrFileExtension)
}

func TestValidateFileSniffsContent(t *testing.T) {
	// The extension claims PNG but the bytes say otherwise
	header := formFile(t, "logo.png", []byte("<html><body>not an image</body></html>"))
	err := ValidateFile(header, ImageConstraints)
	assert.ErrorIs(t, err, ErrFileContent)
}
