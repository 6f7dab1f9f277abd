package logging

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetDebug switches the process log level to debug.
func SetDebug() {
	level.Set(slog.LevelDebug)
}

// New builds the process logger: a text handler on stderr, plus a text
// handler appending to filePath when it is non-empty. The returned close
// func flushes and closes the log file.
func New(filePath string) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, opts),
	}
	closeFn := func() error { return nil }
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(file, opts))
		closeFn = file.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
