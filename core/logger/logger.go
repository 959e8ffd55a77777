package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var log atomic.Pointer[slog.Logger]

// Init configures the global logger. Level is one of debug, info, warn,
// error. Calling Init again replaces the previous configuration, so early
// log lines emitted before config is loaded do not pin the defaults.
func Init(level string, jsonOutput bool) {
	initWriter(os.Stdout, level, jsonOutput)
}

func initWriter(w io.Writer, level string, jsonOutput bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	log.Store(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	if l := log.Load(); l != nil {
		return l
	}
	Init("info", false)
	return log.Load()
}

// normalize tolerates a bare error as the only argument so call sites can
// write Error("Repo:Op", err) as well as Error("msg", "key", value).
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	return args
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}
