package service

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/constructtrack/constructtrack-backend/internal/api/http/middleware"
)

const (
	levelDebug int32 = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int32{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

var minLevel atomic.Int32

func init() { minLevel.Store(levelInfo) }

// SetLogLevel drops log lines below the named level (debug, info, warn or
// error). Unknown names leave the level unchanged and return false.
func SetLogLevel(name string) bool {
	lvl, ok := levelNames[name]
	if ok {
		minLevel.Store(lvl)
	}
	return ok
}

// Logger prefixes workspace log lines with the request id carried by ctx.
type Logger struct {
	requestID string
}

func NewLogger(ctx context.Context) *Logger {
	rid := middleware.GetRequestID(ctx)
	if rid == "" {
		rid = "-"
	}
	return &Logger{requestID: rid}
}

func (l *Logger) LogErrorf(op string, format string, args ...any) {
	l.printf(levelError, "error", op, format, args...)
}

func (l *Logger) LogInfof(op string, format string, args ...any) {
	l.printf(levelInfo, "info", op, format, args...)
}

func (l *Logger) LogWarnf(op string, format string, args ...any) {
	l.printf(levelWarn, "warn", op, format, args...)
}

func (l *Logger) LogDebugf(op string, format string, args ...any) {
	l.printf(levelDebug, "debug", op, format, args...)
}

func (l *Logger) printf(lvl int32, name, op, format string, args ...any) {
	if lvl < minLevel.Load() {
		return
	}
	log.Printf("[%s] request_id=%s op=%s "+format, append([]any{name, l.requestID, op}, args...)...)
}
