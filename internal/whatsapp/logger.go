package whatsapp

import (
	"fmt"
	"log/slog"

	waLog "go.mau.fi/whatsmeow/util/log"

	"kariyer_backend/internal/logger"
)

// slogAdapter exposes the service logger through whatsmeow's logging interface.
type slogAdapter struct {
	log    *slog.Logger
	module string
}

func newLogger(module string) waLog.Logger {
	return &slogAdapter{log: logger.GetLogger().With("component", "whatsapp", "module", module), module: module}
}

func (a *slogAdapter) Warnf(msg string, args ...interface{}) {
	a.log.Warn(fmt.Sprintf(msg, args...))
}

func (a *slogAdapter) Errorf(msg string, args ...interface{}) {
	a.log.Error(fmt.Sprintf(msg, args...))
}

func (a *slogAdapter) Infof(msg string, args ...interface{}) {
	a.log.Info(fmt.Sprintf(msg, args...))
}

func (a *slogAdapter) Debugf(msg string, args ...interface{}) {
	a.log.Debug(fmt.Sprintf(msg, args...))
}

func (a *slogAdapter) Sub(module string) waLog.Logger {
	return newLogger(a.module + "/" + module)
}
