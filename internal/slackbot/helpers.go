package slackbot

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/slack-go/slack/slackevents"

	"github.com/hauxir/claude-code-slack-bot/internal/attachment"
)

var mentionPattern = regexp.MustCompile(`<@[A-Z0-9]+>`)

// stripMention removes mentions of the bot user from message text. Mentions
// of other users are kept so Claude sees them.
func stripMention(text, botUserID string) string {
	cleaned := mentionPattern.ReplaceAllStringFunc(text, func(m string) string {
		if m == "<@"+botUserID+">" {
			return ""
		}
		return m
	})
	return strings.TrimSpace(cleaned)
}

// parseWorkingDirCommand recognizes the "cwd <path>" session command.
func parseWorkingDirCommand(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "cwd ")
	if !ok {
		return "", false
	}
	dir := strings.TrimSpace(strings.Trim(strings.TrimSpace(rest), "`"))
	if dir == "" {
		return "", false
	}
	return dir, true
}

// filesFromPayload pulls the file list out of a raw Events API envelope
// payload. The typed MessageEvent does not decode the files array that
// file_share messages carry on the wire, so it is read directly from the
// JSON. Undecodable payloads yield no files.
func filesFromPayload(payload json.RawMessage) []slackevents.File {
	if len(payload) == 0 {
		return nil
	}
	var envelope struct {
		Event struct {
			Files []slackevents.File `json:"files"`
		} `json:"event"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil
	}
	return envelope.Event.Files
}

// descriptorsFromFiles maps Slack file objects to download descriptors,
// preserving order.
func descriptorsFromFiles(files []slackevents.File) []attachment.FileDescriptor {
	descs := make([]attachment.FileDescriptor, 0, len(files))
	for _, f := range files {
		descs = append(descs, attachment.FileDescriptor{
			Name:               f.Name,
			Mimetype:           f.Mimetype,
			Size:               int64(f.Size),
			URLPrivateDownload: f.URLPrivateDownload,
			URLPrivate:         f.URLPrivate,
		})
	}
	return descs
}
