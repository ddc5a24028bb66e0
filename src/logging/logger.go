package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var atom = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var baseLogger atomic.Pointer[zap.SugaredLogger]

func init() { baseLogger.Store(newLogger(os.Stderr)) }

func newLogger(w io.Writer) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), atom)
	return zap.New(core).Sugar()
}

// SetOutput redirects log output. Writes to w are serialized; it is safe to call
// while other goroutines log.
func SetOutput(w io.Writer) {
	baseLogger.Store(newLogger(w))
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atom.SetLevel(zapLevels[l])
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel {
	switch atom.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

func logf(l LogLevel, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	lg := baseLogger.Load()
	// Without args the input is a finished message; formatting it again would turn a
	// literal % into %!x(MISSING).
	if len(args) == 0 {
		switch l {
		case LevelDebug:
			lg.Debug(format)
		case LevelWarn:
			lg.Warn(format)
		case LevelError:
			lg.Error(format)
		default:
			lg.Info(format)
		}
		return
	}
	switch l {
	case LevelDebug:
		lg.Debugf(format, args...)
	case LevelWarn:
		lg.Warnf(format, args...)
	case LevelError:
		lg.Errorf(format, args...)
	default:
		lg.Infof(format, args...)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Sync flushes buffered log entries.
func Sync() { _ = baseLogger.Load().Sync() }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	dur := time.Since(start)
	Debugf("%s took %s", label, dur)
}
