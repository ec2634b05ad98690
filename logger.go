//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
)

// TraceEnv enables debug tracing of handle lifecycles when set to a
// non-empty value before the first handle is created.
const TraceEnv = "COMPTR_TRACE"

var (
	logger     atomic.Pointer[zap.Logger]
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger.Load() == nil {
			logger.CompareAndSwap(nil, defaultLogger())
		}
	})
	return logger.Load()
}

// SetLogger configures the package's logger. Handle lifecycle events are
// logged at debug level. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func defaultLogger() *zap.Logger {
	if os.Getenv(TraceEnv) == "" {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("comptr")
}

// trace logs a lifecycle event for an interface pointer of kind T.
func trace[T any](event string, p *T, fields ...zap.Field) {
	ce := Logger().Check(zap.DebugLevel, "comptr: "+event)
	if ce == nil {
		return
	}
	fields = append(fields,
		zap.String("type", typeName[T]()),
		zap.Uintptr("addr", uintptr(unsafe.Pointer(p))),
	)
	ce.Write(fields...)
}
