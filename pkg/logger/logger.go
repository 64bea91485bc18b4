package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Init builds the process logger. Production gets JSON at info level,
// every other environment gets console output at debug level.
func Init(environment string) {
	cfg := zap.NewDevelopmentConfig()
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewExample()
	}
	SetLogger(l)
}

// SetLogger replaces the process logger, mostly for tests.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, keysAndValues ...any) { current().Debugw(msg, keysAndValues...) }

func Info(msg string, keysAndValues ...any) { current().Infow(msg, keysAndValues...) }

func Warn(msg string, keysAndValues ...any) { current().Warnw(msg, keysAndValues...) }

func Error(msg string, keysAndValues ...any) { current().Errorw(msg, keysAndValues...) }

func Fatal(msg string, keysAndValues ...any) { current().Fatalw(msg, keysAndValues...) }

// Sync flushes buffered entries; call it before exit.
func Sync() error {
	return current().Sync()
}
