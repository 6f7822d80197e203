package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge  = errors.New("file too large")
	ErrFileExtension = errors.New("invalid file extension")
	ErrFileContent   = errors.New("invalid file type")
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
	SkipContentSniff  bool // project files have no registered MIME type
}

var (
	// ImageConstraints covers the preview image slot (JPG, PNG, WEBP).
	ImageConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
		},
		MaxSize: 5 << 20, // 5MB
	}

	// ProjectConstraints covers PixelLab project files. PLP is an opaque
	// container, so only extension and size can be checked.
	ProjectConstraints = FileConstraints{
		AllowedExtensions: map[string]bool{
			".plp": true,
		},
		MaxSize:          20 << 20, // 20MB
		SkipContentSniff: true,
	}

	// VectorConstraints covers XML vector data.
	VectorConstraints = FileConstraints{
		AllowedExtensions: map[string]bool{
			".xml": true,
		},
		MaxSize:          10 << 20, // 10MB
		SkipContentSniff: true,
	}
)

// ValidateFile validates an upload against one or more constraint sets.
// The file must match at least one set.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return fmt.Errorf("no file constraints provided")
	}

	var lastErr error
	for _, constraint := range constraints {
		err := validateAgainstConstraint(header, constraint)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return lastErr
}

func validateAgainstConstraint(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("%w: maximum size is %d MB", ErrFileTooLarge, maxMB)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrFileExtension, ext)
	}

	if constraints.SkipContentSniff {
		return nil
	}

	// Detect actual content type from magic numbers; the Content-Type
	// header is attacker-controlled.
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, err = seeker.Seek(0, 0)
		if err != nil {
			return fmt.Errorf("failed to reset file pointer: %w", err)
		}
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("%w (detected: %s)", ErrFileContent, detectedType)
	}

	return nil
}
