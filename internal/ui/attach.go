package ui

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/services"
)

// LoadAttachment reads a local file into an attachment for the next turn.
func LoadAttachment(path string) (*models.Attachment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("usage: /attach <path>")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > services.MaxAttachmentBytes {
		return nil, fmt.Errorf("%s is larger than %d MB", filepath.Base(path), services.MaxAttachmentBytes>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return &models.Attachment{
		Name: filepath.Base(path),
		Type: mimeType,
		Data: base64.StdEncoding.EncodeToString(data),
	}, nil
}
