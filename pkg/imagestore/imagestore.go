// Package imagestore writes base64-encoded images to disk.
package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SaveImageRequest is the payload of a save request.
type SaveImageRequest struct {
	// Directory is the target directory; it is created when missing.
	Directory string `json:"directory" validate:"required"`
	// Filename may contain subdirectories but must stay inside Directory.
	Filename string `json:"filename" validate:"required"`
	// Data is base64 image data, optionally prefixed with a data URI header.
	Data string `json:"data" validate:"required"`
}

// ErrOutsideDirectory is returned when Filename escapes Directory.
var ErrOutsideDirectory = errors.New("filename escapes target directory")

var (
	validate      = validator.New()
	dataURIPrefix = regexp.MustCompile(`^data:[\w.+-]+/[\w.+-]+;base64,`)
)

// Validate checks that every required field is set.
func (r SaveImageRequest) Validate() error {
	return validate.Struct(r)
}

// Decode strips a leading data URI header and decodes the base64 payload.
func Decode(data string) ([]byte, error) {
	data = dataURIPrefix.ReplaceAllString(strings.TrimSpace(data), "")
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return decoded, nil
}

// Save decodes req.Data and writes it to req.Directory/req.Filename. It
// returns a message naming the written path.
func Save(req SaveImageRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	decoded, err := Decode(req.Data)
	if err != nil {
		return "", err
	}

	path, err := resolve(req.Directory, req.Filename)
	if err != nil {
		return "", err
	}
	if err := Write(path, decoded); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully saved image to %s", path), nil
}

// Write creates the parent directories of path and writes data to it.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func resolve(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, name)
	}
	return path, nil
}

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace   = regexp.MustCompile(`\s+`)
	leadingDots  = regexp.MustCompile(`^\.+`)
	trailingDots = regexp.MustCompile(`\.+$`)
)

// SanitizeDirName turns a sheet name into a directory name that is valid on
// Windows: reserved characters and whitespace runs become "_", and leading or
// trailing dots are replaced by a single "_".
func SanitizeDirName(name string) string {
	name = illegalChars.ReplaceAllString(name, "_")
	name = whitespace.ReplaceAllString(name, "_")
	name = leadingDots.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "_")
	return strings.TrimSpace(name)
}
