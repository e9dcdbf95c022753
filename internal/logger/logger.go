package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

func Init(level slog.Level) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func InitJSON(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		Init(slog.LevelInfo)
	}
	return defaultLogger
}

func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
