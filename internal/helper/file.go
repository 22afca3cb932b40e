package helper

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUniqueObjectName builds a collision-free storage key component from
// the uploaded file name. The original name only contributes its extension.
func GenerateUniqueObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}

	return fmt.Sprintf("%d-%s%s", time.Now().UTC().UnixNano(), uuid.New().String(), ext)
}

// DetectFileContentType sniffs the first 512 bytes and rewinds the file.
func DetectFileContentType(file multipart.File) (string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if n == 0 {
		return "", errors.New("empty file")
	}

	contentType := http.DetectContentType(buffer[:n])

	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}

	return contentType, nil
}
