package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

const MaxAttachmentBytes = 10 << 20

// DecodedAttachment is an attachment with its payload decoded.
type DecodedAttachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

func (a *DecodedAttachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// DataURL returns the payload as a data: URL, the form OpenAI-style APIs take images in.
func (a *DecodedAttachment) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, base64.StdEncoding.EncodeToString(a.Data))
}

// DecodeAttachment validates and decodes a request attachment.
func DecodeAttachment(att *models.Attachment) (*DecodedAttachment, error) {
	if att == nil {
		return nil, nil
	}

	raw := strings.TrimSpace(att.Data)
	mimeType := strings.TrimSpace(att.Type)

	// Browsers hand over FileReader results as data URLs
	if strings.HasPrefix(raw, "data:") {
		header, payload, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, &ValidationError{Message: "Attachment data is not valid base64"}
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		raw = payload
	}

	if raw == "" {
		return nil, &ValidationError{Message: "Attachment is empty"}
	}
	if base64.StdEncoding.DecodedLen(len(raw)) > MaxAttachmentBytes+3 {
		return nil, &ValidationError{Message: "Attachment is too large"}
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &ValidationError{Message: "Attachment data is not valid base64"}
	}
	if len(data) > MaxAttachmentBytes {
		return nil, &ValidationError{Message: "Attachment is too large"}
	}

	if mimeType == "" {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(att.Name)))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	// drop parameters such as "; charset=utf-8"
	if base, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = base
	}

	return &DecodedAttachment{Name: att.Name, MIMEType: mimeType, Data: data}, nil
}

// ExtractAttachmentText turns a non-image attachment into plain text for
// backends that only accept text content.
func ExtractAttachmentText(a *DecodedAttachment) (string, error) {
	switch {
	case strings.HasPrefix(a.MIMEType, "text/"), a.MIMEType == "application/json":
		return extractPlainText(a.Data)
	case a.MIMEType == "application/pdf":
		return extractPDF(a.Data)
	default:
		return "", &ValidationError{Message: fmt.Sprintf("Unsupported attachment type for this model: %s", a.MIMEType)}
	}
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ValidationError{Message: "Text attachment is not valid UTF-8"}
	}

	text := normalizeExtractedText(string(data))
	if text == "" {
		return "", &ValidationError{Message: "Text attachment is empty"}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ValidationError{Message: "Attachment is not a readable PDF"}
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text := normalizeExtractedText(b.String())
	if text == "" {
		return "", &ValidationError{Message: "No extractable text found in PDF"}
	}

	return text, nil
}

func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
