package attachment

import (
	"log/slog"
	"os"
)

// Cleanup removes the temp files behind a processed batch. Strictly best
// effort: a failed or already-done deletion is logged and swallowed, and the
// remaining files are still attempted. Callers run this once per batch after
// the AI turn that consumed the files completes.
func Cleanup(log *slog.Logger, files []ProcessedFile) {
	if log == nil {
		log = slog.Default()
	}
	for _, file := range files {
		if file.TempPath == "" {
			continue
		}
		if err := os.Remove(file.TempPath); err != nil {
			log.Warn("remove temp file failed",
				slog.String("path", file.TempPath),
				slog.Any("error", err))
		}
	}
}
