package config

import (
	"fmt"
	"strings"
)

// UploadFormat describes the artifact layout a build is expected to produce.
type UploadFormat string

const (
	UploadFormatServiceWorker UploadFormat = "service-worker" // single script
	UploadFormatModules       UploadFormat = "modules"        // multiple ES modules
)

// NormalizeUploadFormat canonicalizes user input returning empty string if unknown.
func NormalizeUploadFormat(raw string) UploadFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(UploadFormatServiceWorker):
		return UploadFormatServiceWorker
	case string(UploadFormatModules):
		return UploadFormatModules
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f UploadFormat) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown formats.
func (f *UploadFormat) UnmarshalText(text []byte) error {
	v := NormalizeUploadFormat(string(text))
	if v == "" {
		return fmt.Errorf("unknown upload format %q (expected %s or %s)", string(text), UploadFormatServiceWorker, UploadFormatModules)
	}
	*f = v
	return nil
}
