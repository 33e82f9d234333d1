package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON logger at info level in prod, a text logger at debug
// level otherwise.
func New(env string) *slog.Logger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h).With("app", "drivedeal")
}
