package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // process wide logger singleton
var (
	global   atomic.Value // stores Logger
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the process wide logger. It must be called once at startup,
// before any other logging function. A second call panics.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		initOnce.Do(func() {})

		l, err := New(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Global returns the process wide logger. A console logger at debug level is
// created lazily when SetGlobal was never called.
func Global() Logger {
	initOnce.Do(func() {
		l, err := New(Config{Level: levelDebug, Encoding: encConsole})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(l)
	})
	l, ok := global.Load().(Logger)
	if !ok {
		panic("[logger]: global contains invalid type")
	}
	return l
}

func Info(msg any) { Global().Info(msg) }
func Warn(msg any) { Global().Warn(msg) }
func Error(msg any) { Global().Error(msg) }
func Errorx(err error) { Global().Errorx(err) }
func Fatalx(err error) { Global().Fatalx(err) }

func With(keysAndValues ...any) Logger { return Global().With(keysAndValues...) }
func WithContext(ctx context.Context) Logger { return Global().WithContext(ctx) }
func Named(name string) Logger { return Global().Named(name) }

// Sync flushes the global logger.
func Sync() error {
	return Global().Sync()
}
