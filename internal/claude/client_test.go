package claude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hauxir/claude-code-slack-bot/internal/content"
)

func TestBlockParams(t *testing.T) {
	t.Parallel()

	parts := BlockParams([]content.Block{
		content.TextBlock("hello"),
		content.ImageBlock(content.MediaTypePNG, "aGVsbG8="),
		content.TextBlock("after"),
	})

	require.Len(t, parts, 3)

	require.NotNil(t, parts[0].OfText)
	assert.Equal(t, "hello", parts[0].OfText.Text)

	require.NotNil(t, parts[1].OfImage)
	require.NotNil(t, parts[1].OfImage.Source.OfBase64)
	assert.Equal(t, "image/png", string(parts[1].OfImage.Source.OfBase64.MediaType))
	assert.Equal(t, "aGVsbG8=", parts[1].OfImage.Source.OfBase64.Data)

	require.NotNil(t, parts[2].OfText)
	assert.Equal(t, "after", parts[2].OfText.Text)
}

func TestBlockParamsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BlockParams(nil))
}

func TestSystemText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", systemText("", ""))
	assert.Equal(t, "be terse", systemText("be terse", ""))
	assert.Equal(t,
		"The user's working directory is /srv/project.",
		systemText("", "/srv/project"))
	assert.Equal(t,
		"be terse\n\nThe user's working directory is /srv/project.",
		systemText("be terse", "/srv/project"))
}
