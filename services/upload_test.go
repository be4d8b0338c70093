package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxRosterUploadSize))

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestValidateRosterUpload(t *testing.T) {
	t.Run("valid workbook signature", func(t *testing.T) {
		assert.NoError(t, ValidateRosterUpload(multipartFile(t, "roster.XLSX", []byte("PK\x03\x04rest"))))
	})

	t.Run("wrong extension", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRosterUpload(multipartFile(t, "roster.csv", []byte("PK\x03\x04"))), ErrRosterNotXLSX)
	})

	t.Run("not a zip", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRosterUpload(multipartFile(t, "roster.xlsx", []byte("name,initials"))), ErrRosterNotXLSX)
	})

	t.Run("too short", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRosterUpload(multipartFile(t, "roster.xlsx", []byte("PK"))), ErrRosterNotXLSX)
	})

	t.Run("too large", func(t *testing.T) {
		header := multipartFile(t, "roster.xlsx", []byte("PK\x03\x04"))
		header.Size = MaxRosterUploadSize + 1
		assert.ErrorIs(t, ValidateRosterUpload(header), ErrRosterTooLarge)
	})
}
