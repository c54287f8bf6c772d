package lime

import "go.uber.org/zap"

// logger receives debug-mode warnings and resource lifecycle messages.
var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("lime")
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger
}
