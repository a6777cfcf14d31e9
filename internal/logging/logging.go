package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mwiater/featcmp/internal/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = zap.NewNop().Sugar()
)

// Init configures the process logger. Warnings (everything when debug is set)
// go to stderr so stdout stays reserved for reports; when logPath is non-empty
// every entry is also appended to that file as JSON.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleLevel := zapcore.WarnLevel
	if debug {
		consoleLevel = zapcore.DebugLevel
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), consoleLevel),
	}

	if path := strings.TrimSpace(logPath); path != "" {
		if err := util.EnsureParentDir(path); err != nil {
			return err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zapcore.DebugLevel))
	}

	logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	return nil
}

// Close flushes the logger, closes the log file and reverts to a no-op logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	logger = zap.NewNop().Sugar()
	return closeFileLocked()
}

func closeFileLocked() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// LogEvent records an informational pipeline event.
func LogEvent(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

// LogDebug records detail that is only useful with --debug.
func LogDebug(format string, args ...any) {
	current().Debug(fmt.Sprintf(format, args...))
}

// LogWarn records a condition the user should see even without --debug.
func LogWarn(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}
