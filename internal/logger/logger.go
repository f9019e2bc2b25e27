// Package logger holds the process-wide slog logger of the Kariyer Kamulog API.
//
// HTTP handlers log through the Ctx* helpers so every line carries the
// request_id and user_id of the call. Services, the WhatsApp client and the
// periodic workers use the package-level functions below.
package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "kariyer-api"

var log *slog.Logger

// Init installs the logger for SERVER_ENV. development prints text at debug
// level, test prints only warnings, and production emits JSON at info level
// for the log collector.
func Init(env string) {
	log = slog.New(newHandler(os.Stdout, env)).With("service", serviceName, "env", env)
	slog.SetDefault(log)
}

func newHandler(w io.Writer, env string) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}
	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		return slog.NewTextHandler(w, opts)
	case "test":
		opts.Level = slog.LevelWarn
		opts.AddSource = false
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// GetLogger falls back to the development logger when Init has not run,
// which is the case in package tests.
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// WorkerLog records one run of a background job: subscription expiry, job
// deactivation or a WhatsApp reconnect. Failed runs log at error level,
// completed runs at debug.
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{"worker", worker, "operation", operation}, args...)
	if err != nil {
		GetLogger().Error("worker run failed", append(fields, "error", err.Error())...)
		return
	}
	GetLogger().Debug("worker run completed", fields...)
}
