package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxRosterUploadSize caps uploaded roster workbooks
const MaxRosterUploadSize = 5 * 1024 * 1024 // 5MB

var (
	ErrRosterTooLarge = errors.New("roster exceeds maximum allowed size of 5MB")
	ErrRosterNotXLSX  = errors.New("only .xlsx rosters are allowed")
)

// ValidateRosterUpload checks size, extension and the zip signature every
// xlsx file starts with
func ValidateRosterUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxRosterUploadSize {
		return ErrRosterTooLarge
	}

	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".xlsx" {
		return ErrRosterNotXLSX
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 4)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	if n < 4 || string(header) != "PK\x03\x04" {
		return ErrRosterNotXLSX
	}

	return nil
}
