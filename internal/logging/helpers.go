package logging

import (
	"context"
	"log/slog"
)

// The helpers below accept a nil logger so components built without one
// stay silent instead of guarding every call site.

func Debug(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelDebug, msg, args)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	emit(logger, slog.LevelWarn, msg, args)
}

// Error logs at error level with err under FieldError when non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.String(FieldError, err.Error()))
	}
	emit(logger, slog.LevelError, msg, args)
}

func emit(logger *slog.Logger, level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	logger.Log(ctx, level, msg, args...)
}
