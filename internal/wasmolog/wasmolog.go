// Package wasmolog is the compiler's ambient logger: a single package-level
// *zap.Logger, silent by default, that the decoder and lowering walk call
// into for diagnostics that aren't themselves part of the returned error
// (sections decoded, a per-module summary, functions lowered). Tests and
// embedders that want to see this output call SetLogger once at startup.
package wasmolog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// L returns the package's logger, defaulting to a no-op logger so a caller
// that never configures logging pays nothing for it.
func L() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the package's logger. Call it before Compile if
// diagnostics are wanted; the zero value keeps logging silent.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
