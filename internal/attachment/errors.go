package attachment

import (
	"errors"
	"fmt"
)

var (
	// ErrFileTooLarge indicates the declared size exceeds the download ceiling.
	ErrFileTooLarge = errors.New("attachment too large")
	// ErrMissingDownloadURL indicates the descriptor carries no usable URL.
	ErrMissingDownloadURL = errors.New("attachment has no download url")
	// ErrInvalidImageContent indicates a declared image whose bytes match no
	// known image signature. Slack returns HTML error pages with an image/*
	// content type on auth failures, so the declared mimetype alone is never
	// trusted for images.
	ErrInvalidImageContent = errors.New("invalid image content")
)

// HTTPError reports a non-success response from the file host.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("download failed with status %d", e.Status)
}
