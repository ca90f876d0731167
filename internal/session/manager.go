package session

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Manager tracks the working directory chosen for each Slack conversation.
// A thread inherits its channel's directory until it sets its own; both fall
// back to the process default. State is in-memory only and lives for the
// process lifetime.
type Manager struct {
	mu         sync.RWMutex
	dirs       map[string]string
	defaultDir string
	logger     *slog.Logger
}

// NewManager creates a session manager with the given default directory.
func NewManager(log *slog.Logger, defaultDir string) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		dirs:       make(map[string]string),
		defaultDir: strings.TrimSpace(defaultDir),
		logger:     log.With(slog.String("component", "session")),
	}
}

func key(channel, threadTS string) string {
	if threadTS == "" {
		return channel
	}
	return channel + ":" + threadTS
}

// SetWorkingDir records dir for the conversation after checking it exists
// and is a directory.
func (m *Manager) SetWorkingDir(channel, threadTS, dir string) error {
	dir = strings.TrimSpace(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory: %s is not a directory", dir)
	}

	m.mu.Lock()
	m.dirs[key(channel, threadTS)] = dir
	m.mu.Unlock()

	m.logger.Info("working directory set",
		slog.String("channel", channel),
		slog.String("thread_ts", threadTS),
		slog.String("dir", dir))
	return nil
}

// WorkingDir resolves the directory for a conversation: thread first, then
// channel, then the process default.
func (m *Manager) WorkingDir(channel, threadTS string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if threadTS != "" {
		if dir, ok := m.dirs[key(channel, threadTS)]; ok {
			return dir
		}
	}
	if dir, ok := m.dirs[key(channel, "")]; ok {
		return dir
	}
	return m.defaultDir
}
