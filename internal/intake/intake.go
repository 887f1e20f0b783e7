// Package intake handles resume uploads on the application webhook:
// format and size validation plus text extraction for the screening agent.
package intake

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
)

// MaxFileSize is the largest resume upload accepted, in bytes.
const MaxFileSize = 5 << 20 // 5MB

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// ValidationError reports a rejected resume upload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateResumeFile checks the file extension and size of an upload.
func ValidateResumeFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return &ValidationError{Message: fmt.Sprintf("invalid file format: %s (allowed: .pdf, .doc, .docx, .txt)", ext)}
	}
	if size > MaxFileSize {
		return &ValidationError{Message: "file too large, max size is 5MB"}
	}
	return nil
}

// ValidatePhoneNumber accepts digits with an optional leading +.
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return nil
	}
	for i, r := range phone {
		if r == '+' && i == 0 {
			continue
		}
		if !unicode.IsDigit(r) {
			return &ValidationError{Message: "phone number must contain only digits and optional +"}
		}
	}
	return nil
}

// ExtractText converts an uploaded resume into plain text. Plain text files
// pass through unchanged; binary formats go through docconv.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", &ValidationError{Message: fmt.Sprintf("invalid file format: %s", ext)}
	}

	if ext == ".txt" {
		return string(data), nil
	}

	mimeType := allowedExtensions[ext]
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, true)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text from %s: %w", filename, err)
	}
	return strings.TrimSpace(res.Body), nil
}
