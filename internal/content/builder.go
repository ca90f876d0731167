package content

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hauxir/claude-code-slack-bot/internal/attachment"
)

const (
	// maxTextFileChars caps how much of a text attachment is inlined.
	maxTextFileChars = 10_000

	fragmentSeparator = "\n\n"
	analyzePrompt     = "Please analyze the attached files."
)

var imageMediaTypes = map[string]MediaType{
	"image/jpeg": MediaTypeJPEG,
	"image/jpg":  MediaTypeJPEG,
	"image/png":  MediaTypePNG,
	"image/gif":  MediaTypeGIF,
	"image/webp": MediaTypeWebP,
}

// Builder assembles downloaded attachments and free text into the ordered
// content block sequence one user turn sends to the model.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a content block builder.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		logger: log.With(slog.String("component", "content_builder")),
	}
}

// Build walks files in input order, accumulating pending text fragments and
// emitting blocks. Pending text is flushed into a single text block before
// each image so text never trails behind the image it was meant to precede.
// The "[Image: name]" caption is appended to the pending buffer instead of
// being flushed immediately, so it lands in a later text block, after the
// image it names. Per-file read failures and unsupported image formats
// degrade to placeholder fragments; nothing here fails the turn. With no
// text and no files the result is empty.
func (b *Builder) Build(files []attachment.ProcessedFile, userText string) []Block {
	blocks := make([]Block, 0, len(files)+1)
	var pending []string
	if userText != "" {
		pending = append(pending, userText)
	}

	for _, file := range files {
		switch {
		case file.IsImage:
			// Flush before touching the file so any degraded fragment
			// stands apart from the text that preceded the image.
			if len(pending) > 0 {
				blocks = append(blocks, TextBlock(strings.Join(pending, fragmentSeparator)))
				pending = pending[:0]
			}
			data, err := os.ReadFile(file.Path)
			if err != nil {
				b.logger.Warn("read image failed",
					slog.String("name", file.Name),
					slog.Any("error", err))
				pending = append(pending, fmt.Sprintf("[Failed to read image: %s]", file.Name))
				continue
			}
			mediaType, ok := imageMediaTypes[file.Mimetype]
			if !ok {
				pending = append(pending, fmt.Sprintf("[Unsupported image type: %s (%s)]", file.Name, file.Mimetype))
				continue
			}
			blocks = append(blocks, ImageBlock(mediaType, base64.StdEncoding.EncodeToString(data)))
			pending = append(pending, fmt.Sprintf("[Image: %s]", file.Name))
		case file.IsText:
			data, err := os.ReadFile(file.Path)
			if err != nil {
				b.logger.Warn("read text file failed",
					slog.String("name", file.Name),
					slog.Any("error", err))
				pending = append(pending, fmt.Sprintf("[Error reading file: %s]", file.Name))
				continue
			}
			pending = append(pending, fmt.Sprintf("## File: %s\n```\n%s\n```", file.Name, truncateText(string(data))))
		default:
			pending = append(pending, fmt.Sprintf("[Attached file: %s (%s, %d bytes)]", file.Name, file.Mimetype, file.Size))
		}
	}

	if userText == "" && len(files) > 0 {
		pending = append(pending, analyzePrompt)
	}
	if len(pending) > 0 {
		blocks = append(blocks, TextBlock(strings.Join(pending, fragmentSeparator)))
	}
	return blocks
}

// HasImages reports whether any file in the batch is an image, so callers
// can route the turn to a vision-capable model.
func HasImages(files []attachment.ProcessedFile) bool {
	for _, file := range files {
		if file.IsImage {
			return true
		}
	}
	return false
}

func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextFileChars {
		return text
	}
	return string(runes[:maxTextFileChars]) + "..."
}
