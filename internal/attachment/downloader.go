package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxDownloadBytes is the default max accepted attachment size.
	MaxDownloadBytes int64 = 50 * 1024 * 1024

	downloadTimeout = 60 * time.Second
)

// DownloaderConfig carries the explicit dependencies of a Downloader.
// Token is the Slack bot credential sent as a bearer token on every
// download request.
type DownloaderConfig struct {
	Token string
	// MaxBytes overrides MaxDownloadBytes when > 0.
	MaxBytes int64
	// TempDir overrides os.TempDir() when set.
	TempDir string
	// Client overrides the default HTTP client when set.
	Client *http.Client
}

// Downloader fetches Slack file attachments, validates them, and spools the
// bytes to uniquely named temp files.
type Downloader struct {
	token    string
	maxBytes int64
	tempDir  string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewDownloader creates a downloader. Zero-value config fields fall back to
// package defaults.
func NewDownloader(log *slog.Logger, cfg DownloaderConfig) *Downloader {
	if log == nil {
		log = slog.Default()
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = MaxDownloadBytes
	}
	tempDir := strings.TrimSpace(cfg.TempDir)
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	return &Downloader{
		token:    cfg.Token,
		maxBytes: maxBytes,
		tempDir:  tempDir,
		client:   client,
		logger:   log.With(slog.String("component", "downloader")),
		now:      time.Now,
	}
}

// Fetch downloads a single attachment. The declared size is checked before
// any network call; declared images must additionally pass the magic-number
// check before the bytes are accepted. On success the body is written to
// tempdir/<unix-ms>-<name> and the returned ProcessedFile points at it.
func (d *Downloader) Fetch(ctx context.Context, desc FileDescriptor) (ProcessedFile, error) {
	if desc.Size > d.maxBytes {
		return ProcessedFile{}, fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, desc.Size, d.maxBytes)
	}

	url := strings.TrimSpace(desc.URLPrivateDownload)
	if url == "" {
		url = strings.TrimSpace(desc.URLPrivate)
	}
	if url == "" {
		return ProcessedFile{}, ErrMissingDownloadURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("download attachment: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ProcessedFile{}, &HTTPError{Status: resp.StatusCode}
	}

	// The declared size is client-supplied; cap the actual read so a server
	// sending more than declared cannot blow past the ceiling.
	limited := &io.LimitedReader{R: resp.Body, N: d.maxBytes + 1}
	body, err := io.ReadAll(limited)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > d.maxBytes {
		return ProcessedFile{}, fmt.Errorf("%w: response exceeded %d bytes", ErrFileTooLarge, d.maxBytes)
	}

	class := Classify(desc.Mimetype)
	if class.IsImage && !HasValidImageHeader(body) {
		return ProcessedFile{}, fmt.Errorf("%w: %s", ErrInvalidImageContent, desc.Name)
	}

	path := filepath.Join(d.tempDir, fmt.Sprintf("%d-%s", d.now().UnixMilli(), filepath.Base(desc.Name)))
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return ProcessedFile{}, fmt.Errorf("write temp file: %w", err)
	}

	return ProcessedFile{
		Path:     path,
		Name:     desc.Name,
		Mimetype: desc.Mimetype,
		IsImage:  class.IsImage,
		IsText:   class.IsText,
		Size:     int64(len(body)),
		TempPath: path,
	}, nil
}

// FetchAll downloads attachments sequentially in input order. A failure is
// logged and drops only the affected file; it never aborts the batch, so
// the result preserves input order over the files that succeeded.
func (d *Downloader) FetchAll(ctx context.Context, descs []FileDescriptor) []ProcessedFile {
	files := make([]ProcessedFile, 0, len(descs))
	for _, desc := range descs {
		file, err := d.Fetch(ctx, desc)
		if err != nil {
			d.logger.Warn("skip attachment",
				slog.String("name", desc.Name),
				slog.String("mimetype", desc.Mimetype),
				slog.Any("error", err))
			continue
		}
		files = append(files, file)
	}
	return files
}
