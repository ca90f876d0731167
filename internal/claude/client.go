package claude

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hauxir/claude-code-slack-bot/internal/config"
	"github.com/hauxir/claude-code-slack-bot/internal/content"
)

// Client runs single Messages API turns over assembled content blocks.
type Client struct {
	api         anthropic.Client
	model       string
	visionModel string
	maxTokens   int64
	system      string
	logger      *slog.Logger
}

// NewClient creates a client from config. The vision model falls back to
// the text model when unset.
func NewClient(log *slog.Logger, cfg config.ClaudeConfig) *Client {
	if log == nil {
		log = slog.Default()
	}
	visionModel := strings.TrimSpace(cfg.VisionModel)
	if visionModel == "" {
		visionModel = cfg.Model
	}
	return &Client{
		api:         anthropic.NewClient(anthropicopt.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		visionModel: visionModel,
		maxTokens:   int64(cfg.MaxTokens),
		system:      cfg.SystemPrompt,
		logger:      log.With(slog.String("component", "claude")),
	}
}

// TurnOptions tunes a single completion turn.
type TurnOptions struct {
	// Vision routes the turn to the vision-capable model.
	Vision bool
	// WorkingDir, when set, is surfaced to the model via the system prompt.
	WorkingDir string
}

// Complete sends blocks as one user message and returns the concatenated
// assistant text.
func (c *Client) Complete(ctx context.Context, blocks []content.Block, opts TurnOptions) (string, error) {
	parts := BlockParams(blocks)
	if len(parts) == 0 {
		return "", fmt.Errorf("no content to send")
	}

	model := c.model
	if opts.Vision {
		model = c.visionModel
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(parts...),
		},
	}
	if system := systemText(c.system, opts.WorkingDir); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	c.logger.Debug("messages turn",
		slog.String("model", model),
		slog.Int("blocks", len(parts)))

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("messages api: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String(), nil
}

// systemText combines the configured system prompt with the session's
// working directory.
func systemText(base, workingDir string) string {
	parts := make([]string, 0, 2)
	if strings.TrimSpace(base) != "" {
		parts = append(parts, base)
	}
	if strings.TrimSpace(workingDir) != "" {
		parts = append(parts, "The user's working directory is "+workingDir+".")
	}
	return strings.Join(parts, "\n\n")
}

// BlockParams converts the builder's block union into Messages API content
// block params, preserving order.
func BlockParams(blocks []content.Block) []anthropic.ContentBlockParamUnion {
	parts := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))
	for _, block := range blocks {
		switch block.Type {
		case content.BlockTypeText:
			parts = append(parts, anthropic.NewTextBlock(block.Text))
		case content.BlockTypeImage:
			parts = append(parts, anthropic.NewImageBlockBase64(string(block.MediaType), block.Data))
		}
	}
	return parts
}
