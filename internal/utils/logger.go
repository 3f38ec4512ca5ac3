package utils

import (
	"os"
	"path/filepath"
	"sync"

	"foodshare/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger structured logger; fields are alternating key/value pairs
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
	Close() error
}

// AppLogger zap-backed Logger
type AppLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a logger from config
func NewLogger(cfg *config.LogConfig) (*AppLogger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer
	switch cfg.Output {
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "log/app.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		sink = zapcore.AddSync(f)
	default:
		sink = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return &AppLogger{sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}, nil
}

// NewNopLogger discards everything; used by tests
func NewNopLogger() *AppLogger {
	return &AppLogger{sugar: zap.NewNop().Sugar()}
}

func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, normalizeFields(fields)...)
}

func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, normalizeFields(fields)...)
}

func (l *AppLogger) Error(msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, normalizeFields(fields)...)
}

func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, normalizeFields(fields)...)
}

// Fatal logs and exits the process
func (l *AppLogger) Fatal(msg string, fields ...interface{}) {
	l.sugar.Fatalw(msg, normalizeFields(fields)...)
}

// Close flushes buffered entries. Sync errors on stdout (EINVAL on some platforms) are ignored.
func (l *AppLogger) Close() error {
	_ = l.sugar.Sync()
	return nil
}

// normalizeFields expands a single map argument into key/value pairs
func normalizeFields(fields []interface{}) []interface{} {
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			out := make([]interface{}, 0, len(m)*2)
			for k, v := range m {
				out = append(out, k, v)
			}
			return out
		}
	}
	return fields
}

var (
	globalLogger Logger
	loggerMu     sync.RWMutex
)

// InitLogger sets the global logger
func InitLogger(cfg *config.LogConfig) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the global logger
func SetLogger(l Logger) {
	loggerMu.Lock()
	globalLogger = l
	loggerMu.Unlock()
}

// GetLogger returns the global logger, creating a stdout one on first use
func GetLogger() Logger {
	loggerMu.RLock()
	l := globalLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger == nil {
		logger, err := NewLogger(&config.LogConfig{Level: "info", Format: "console", Output: "stdout"})
		if err != nil {
			globalLogger = NewNopLogger()
		} else {
			globalLogger = logger
		}
	}
	return globalLogger
}

// CloseLogger flushes the global logger
func CloseLogger() error {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
