package services

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func testLogger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}

// fileHeader builds a multipart upload the way net/http would hand it to a handler
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}
