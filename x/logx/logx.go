// Package logx is a small levelled console logger for firmware builds.
//
// Lines look like "Info: thermo: sensor ready" and go through fmtx so MCU
// builds do not pull in fmt.
package logx

import (
	"io"
	"sync"

	"thermosense-go/x/fmtx"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelPrefix = [...]string{"Debug: ", "Info: ", "Warn: ", "Error: "}

// Logger writes one line per call. Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	min   Level
	scope string
}

// New returns a Logger writing to w at level min and above.
// A nil w writes to fmtx.DefaultOutput at call time.
func New(w io.Writer, min Level) *Logger {
	return &Logger{w: w, min: min}
}

// With returns a child logger whose lines carry "scope: ".
func (l *Logger) With(scope string) *Logger {
	s := scope
	if l.scope != "" {
		s = l.scope + "." + scope
	}
	return &Logger{w: l.w, min: l.min, scope: s}
}

func (l *Logger) SetLevel(min Level) {
	l.mu.Lock()
	l.min = min
	l.mu.Unlock()
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(lv Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lv < l.min {
		return
	}
	line := levelPrefix[lv]
	if l.scope != "" {
		line += l.scope + ": "
	}
	line += fmtx.Sprintf(format, args...) + "\n"
	w := l.w
	if w == nil {
		w = fmtx.DefaultOutput
	}
	_, _ = io.WriteString(w, line)
}

// Discard drops everything.
var Discard = New(io.Discard, LevelError+1)
