package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/neurobalance/backend/src/logger"
)

// AllowedClientContentTypes maps client-declared MIME types to whether we
// accept them for payment-export uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // legacy Excel MIME, often sent for both csv and xlsx
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"text/plain":               true, // CSVs are often plain text
	"application/octet-stream": true, // fallback, magic-byte check still applies
	"application/zip":          true, // some browsers send this for .xlsx
}

// zipMagic is the local-file-header signature every xlsx (zip container)
// starts with.
var zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	if allowed, exists := AllowedClientContentTypes[strings.ToLower(contentType)]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for payment export upload", contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes checks the actual file content signature and
// returns the detected content type. xlsx uploads must carry the zip
// signature; anything else must sniff as text.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Reset so the actual parser reads the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if bytes.HasPrefix(buffer[:n], zipMagic) {
		return "application/zip", nil
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"text/csv":                 true,
		"application/csv":          true,
		"application/octet-stream": true, // generic fallback, strict parsing follows
	}

	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a spreadsheet export", detectedContentType)
	}

	logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
