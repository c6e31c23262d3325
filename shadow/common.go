package shadow

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultExitFn is invoked by functions and methods ending in
	// the "OrExit" suffix when an error occurs.
	DefaultExitFn = func(err error) {
		FatalLogger().Fatal("fatal", zap.Error(err))
	}
)

// FatalLogger returns the logger used by the "OrExit" exit handlers.
// It is the global zap logger when one was installed with
// zap.ReplaceGlobals, and otherwise a console logger writing to stderr.
func FatalLogger() *zap.Logger {
	global := zap.L()
	if global.Core().Enabled(zapcore.FatalLevel) {
		return global
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel))
}
