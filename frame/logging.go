package frame

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr holds the structured logger used for caller-misuse
// diagnostics (ResultAs type mismatches, Graphics on an untouched
// slot). Defaults to a no-op logger so frame has no observable behavior
// until a caller opts in via SetLogger.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger installs l as the logger every Context/SubContext uses for
// caller-misuse diagnostics. Passing nil restores the no-op logger.
// Typically called once during pipeline setup with the same logger
// passed to pipeline.Config.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

func logger() *zap.Logger {
	return loggerPtr.Load()
}
