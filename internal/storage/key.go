package storage

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Common content types seen from the messaging platform. The mime package
// fallback can return several extensions in registry order; pinning these
// keeps derived keys stable across platforms.
var extByContentType = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"audio/mpeg":      ".mp3",
	"audio/mp4":       ".m4a",
	"application/pdf": ".pdf",
	"application/zip": ".zip",
	"text/plain":      ".txt",
}

// ObjectKey derives the storage key for an uploaded file:
// an 8-hex-character random disambiguator, an underscore, the sanitized
// base of the declared filename, and an extension inferred from the
// declared content type.
//
// The declared name is attacker-controlled. Sanitization strips every rune
// outside [A-Za-z0-9_-], which removes path separators and dots; the random
// prefix keeps keys from colliding when two uploads sanitize to the same
// base.
func ObjectKey(originalName, contentType string) string {
	return randomPrefix() + "_" + sanitizeBaseName(originalName) + extensionFor(contentType)
}

// randomPrefix returns 8 hex characters from a fresh UUID.
func randomPrefix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func sanitizeBaseName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}

	if ext, ok := extByContentType[mediaType]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	sort.Strings(exts)
	return exts[0]
}
