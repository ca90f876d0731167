package slackbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/hauxir/claude-code-slack-bot/internal/attachment"
	"github.com/hauxir/claude-code-slack-bot/internal/claude"
	"github.com/hauxir/claude-code-slack-bot/internal/config"
	"github.com/hauxir/claude-code-slack-bot/internal/content"
	"github.com/hauxir/claude-code-slack-bot/internal/session"
)

const (
	reactionWorking = "eyes"
	reactionDone    = "white_check_mark"
	reactionFailed  = "x"
)

// ClaudeClient is the single-turn completion surface the bot needs.
type ClaudeClient interface {
	Complete(ctx context.Context, blocks []content.Block, opts claude.TurnOptions) (string, error)
}

// Bot connects to Slack over Socket Mode, turns inbound messages and their
// attachments into content blocks, runs a Claude turn, and replies in-thread.
type Bot struct {
	api        *slack.Client
	socket     *socketmode.Client
	downloader *attachment.Downloader
	builder    *content.Builder
	claude     ClaudeClient
	sessions   *session.Manager
	logger     *slog.Logger
	botUserID  string
}

// New creates a bot from config and its collaborators.
func New(
	log *slog.Logger,
	cfg config.SlackConfig,
	downloader *attachment.Downloader,
	builder *content.Builder,
	claude ClaudeClient,
	sessions *session.Manager,
) *Bot {
	if log == nil {
		log = slog.Default()
	}
	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))
	return &Bot{
		api:        api,
		socket:     socketmode.New(api),
		downloader: downloader,
		builder:    builder,
		claude:     claude,
		sessions:   sessions,
		logger:     log.With(slog.String("component", "slackbot")),
	}
}

// Run authenticates, starts the event loop, and blocks until ctx is
// cancelled or the socket connection fails.
func (b *Bot) Run(ctx context.Context) error {
	auth, err := b.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test: %w", err)
	}
	b.botUserID = auth.UserID
	b.logger.Info("connected", slog.String("bot_user_id", b.botUserID))

	go b.handleEvents(ctx)
	return b.socket.RunContext(ctx)
}

func (b *Bot) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socket.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnected:
				b.logger.Info("socket mode connected")
			case socketmode.EventTypeConnectionError:
				b.logger.Warn("socket mode connection error")
			case socketmode.EventTypeEventsAPI:
				// Ack unconditionally; an envelope we cannot decode would
				// otherwise be redelivered forever.
				var raw json.RawMessage
				if evt.Request != nil {
					raw = evt.Request.Payload
					b.socket.Ack(*evt.Request)
				}
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				b.dispatch(ctx, apiEvent, raw)
			}
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, apiEvent slackevents.EventsAPIEvent, raw json.RawMessage) {
	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		// The decoded message event drops the files array, so it is
		// re-extracted from the raw envelope payload.
		b.handleMessage(ctx, ev, filesFromPayload(raw))
	case *slackevents.AppMentionEvent:
		// Mentions also arrive as message events carrying the file list;
		// handling both would answer twice.
	}
}

func (b *Bot) shouldHandle(ev *slackevents.MessageEvent) bool {
	if ev.BotID != "" || ev.User == "" || ev.User == b.botUserID {
		return false
	}
	if ev.SubType != "" && ev.SubType != "file_share" {
		return false
	}
	if ev.ChannelType == "im" {
		return true
	}
	// In channels the bot only answers when addressed.
	return strings.Contains(ev.Text, "<@"+b.botUserID+">")
}

func (b *Bot) handleMessage(ctx context.Context, ev *slackevents.MessageEvent, eventFiles []slackevents.File) {
	if !b.shouldHandle(ev) {
		return
	}

	text := stripMention(ev.Text, b.botUserID)
	replyTS := ev.ThreadTimeStamp
	if replyTS == "" {
		replyTS = ev.TimeStamp
	}

	if dir, ok := parseWorkingDirCommand(text); ok {
		b.handleWorkingDirCommand(ctx, ev, replyTS, dir)
		return
	}

	descs := descriptorsFromFiles(eventFiles)
	if text == "" && len(descs) == 0 {
		return
	}

	b.react(ctx, ev.Channel, ev.TimeStamp, reactionWorking)

	files := b.downloader.FetchAll(ctx, descs)
	defer attachment.Cleanup(b.logger, files)

	blocks := b.builder.Build(files, text)
	if len(blocks) == 0 {
		return
	}

	reply, err := b.claude.Complete(ctx, blocks, claude.TurnOptions{
		Vision:     content.HasImages(files),
		WorkingDir: b.sessions.WorkingDir(ev.Channel, ev.ThreadTimeStamp),
	})
	if err != nil {
		b.logger.Error("claude turn failed",
			slog.String("channel", ev.Channel),
			slog.Any("error", err))
		b.react(ctx, ev.Channel, ev.TimeStamp, reactionFailed)
		b.post(ctx, ev.Channel, replyTS, "Sorry, something went wrong while talking to Claude.")
		return
	}

	b.post(ctx, ev.Channel, replyTS, reply)
	b.react(ctx, ev.Channel, ev.TimeStamp, reactionDone)
}

func (b *Bot) handleWorkingDirCommand(ctx context.Context, ev *slackevents.MessageEvent, replyTS, dir string) {
	if err := b.sessions.SetWorkingDir(ev.Channel, ev.ThreadTimeStamp, dir); err != nil {
		b.post(ctx, ev.Channel, replyTS, fmt.Sprintf("Cannot use `%s`: %v", dir, err))
		return
	}
	b.post(ctx, ev.Channel, replyTS, fmt.Sprintf("Working directory set to `%s`.", dir))
}

func (b *Bot) post(ctx context.Context, channel, threadTS, text string) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	if _, _, err := b.api.PostMessageContext(ctx, channel, opts...); err != nil {
		b.logger.Warn("post message failed",
			slog.String("channel", channel),
			slog.Any("error", err))
	}
}

func (b *Bot) react(ctx context.Context, channel, ts, name string) {
	if err := b.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channel, ts)); err != nil {
		b.logger.Debug("add reaction failed",
			slog.String("reaction", name),
			slog.Any("error", err))
	}
}
