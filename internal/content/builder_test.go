package content

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hauxir/claude-code-slack-bot/internal/attachment"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func imageFile(t *testing.T, name string) attachment.ProcessedFile {
	t.Helper()
	path := writeTempFile(t, name, pngHeader)
	return attachment.ProcessedFile{
		Path:     path,
		Name:     name,
		Mimetype: "image/png",
		IsImage:  true,
		Size:     int64(len(pngHeader)),
		TempPath: path,
	}
}

func textFile(t *testing.T, name, body string) attachment.ProcessedFile {
	t.Helper()
	path := writeTempFile(t, name, []byte(body))
	return attachment.ProcessedFile{
		Path:     path,
		Name:     name,
		Mimetype: "text/plain",
		IsText:   true,
		Size:     int64(len(body)),
		TempPath: path,
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	assert.Empty(t, b.Build(nil, ""))
}

func TestBuildTextOnly(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	blocks := b.Build(nil, "hello")
	require.Len(t, blocks, 1)
	assert.Equal(t, TextBlock("hello"), blocks[0])
}

func TestBuildSingleImageNoUserText(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{imageFile(t, "shot.png")}, "")

	// No pending text before the image, so nothing is flushed ahead of it.
	// The caption and the analyze directive land in the trailing text block.
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockTypeImage, blocks[0].Type)
	assert.Equal(t, MediaTypePNG, blocks[0].MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), blocks[0].Data)
	assert.Equal(t, BlockTypeText, blocks[1].Type)
	assert.Equal(t, "[Image: shot.png]\n\nPlease analyze the attached files.", blocks[1].Text)
}

func TestBuildImageWithUserText(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{imageFile(t, "shot.png")}, "what is this?")

	require.Len(t, blocks, 3)
	assert.Equal(t, TextBlock("what is this?"), blocks[0])
	assert.Equal(t, BlockTypeImage, blocks[1].Type)
	// Caption is flushed after the image, not combined with the user text.
	assert.Equal(t, TextBlock("[Image: shot.png]"), blocks[2])
}

func TestBuildTwoImagesCaptionOrdering(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{
		imageFile(t, "one.png"),
		imageFile(t, "two.png"),
	}, "compare")

	// The first image's caption is pending when the second image arrives,
	// so it flushes between the two images.
	require.Len(t, blocks, 5)
	assert.Equal(t, TextBlock("compare"), blocks[0])
	assert.Equal(t, BlockTypeImage, blocks[1].Type)
	assert.Equal(t, TextBlock("[Image: one.png]"), blocks[2])
	assert.Equal(t, BlockTypeImage, blocks[3].Type)
	assert.Equal(t, TextBlock("[Image: two.png]"), blocks[4])
}

func TestBuildTextFile(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{textFile(t, "notes.txt", "remember the milk")}, "summarize")

	require.Len(t, blocks, 1)
	assert.Equal(t,
		"summarize\n\n## File: notes.txt\n```\nremember the milk\n```",
		blocks[0].Text)
}

func TestBuildTruncatesLongTextFile(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("x", 10_050)
	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{textFile(t, "big.txt", body)}, "")

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Text, strings.Repeat("x", 10_000)+"...")
	assert.NotContains(t, blocks[0].Text, strings.Repeat("x", 10_001))
}

func TestBuildUnsupportedImageType(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "scan.tiff", []byte{0x49, 0x49, 0x2A, 0x00})
	file := attachment.ProcessedFile{
		Path:     path,
		Name:     "scan.tiff",
		Mimetype: "image/tiff",
		IsImage:  true,
		TempPath: path,
	}

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{file}, "look")

	// Pending text flushes before the file is touched, so the placeholder
	// lands in its own trailing block.
	require.Len(t, blocks, 2)
	assert.Equal(t, TextBlock("look"), blocks[0])
	assert.Equal(t, TextBlock("[Unsupported image type: scan.tiff (image/tiff)]"), blocks[1])
}

func TestBuildUnreadableUnsupportedImage(t *testing.T) {
	t.Parallel()

	// Both degradations apply; the read happens first, so its placeholder
	// wins over the unsupported-type one.
	file := attachment.ProcessedFile{
		Path:     filepath.Join(t.TempDir(), "scan.tiff"),
		Name:     "scan.tiff",
		Mimetype: "image/tiff",
		IsImage:  true,
	}

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{file}, "look")

	require.Len(t, blocks, 2)
	assert.Equal(t, TextBlock("look"), blocks[0])
	assert.Equal(t, TextBlock("[Failed to read image: scan.tiff]"), blocks[1])
}

func TestBuildImageReadFailure(t *testing.T) {
	t.Parallel()

	file := attachment.ProcessedFile{
		Path:     filepath.Join(t.TempDir(), "missing.png"),
		Name:     "missing.png",
		Mimetype: "image/png",
		IsImage:  true,
	}

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{file}, "")

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Text, "[Failed to read image: missing.png]")
}

func TestBuildTextReadFailure(t *testing.T) {
	t.Parallel()

	file := attachment.ProcessedFile{
		Path:     filepath.Join(t.TempDir(), "missing.txt"),
		Name:     "missing.txt",
		Mimetype: "text/plain",
		IsText:   true,
	}

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{file}, "")

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Text, "[Error reading file: missing.txt]")
}

func TestBuildBinaryPlaceholder(t *testing.T) {
	t.Parallel()

	file := attachment.ProcessedFile{
		Path:     filepath.Join(t.TempDir(), "release.zip"),
		Name:     "release.zip",
		Mimetype: "application/zip",
		Size:     2048,
	}

	b := NewBuilder(nil)
	blocks := b.Build([]attachment.ProcessedFile{file}, "")

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Text, "[Attached file: release.zip (application/zip, 2048 bytes)]")
}

func TestHasImages(t *testing.T) {
	t.Parallel()

	assert.False(t, HasImages(nil))
	assert.False(t, HasImages([]attachment.ProcessedFile{{IsText: true}}))
	assert.True(t, HasImages([]attachment.ProcessedFile{{IsText: true}, {IsImage: true}}))
}
