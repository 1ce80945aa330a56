// Package logx is a small levelled line logger for both MCU and host builds.
// Lines look like "Info: engine: mode changed mode=running" so they read the
// same as plain println diagnostics on a serial console.
package logx

import (
	"io"
	"strconv"
	"sync"
	"time"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel accepts "debug", "info", "warn" and "error".
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// sink is shared by a logger and all of its children.
type sink struct {
	mu  sync.Mutex
	w   io.Writer
	min Level
	buf []byte
}

type Logger struct {
	s    *sink
	name string
}

// New returns a logger writing to w at LevelInfo. A nil w discards output.
func New(w io.Writer, name string) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{s: &sink{w: w, min: LevelInfo, buf: make([]byte, 0, 128)}, name: name}
}

// Nop discards everything.
func Nop() *Logger { return New(io.Discard, "") }

// Named returns a child sharing the writer and level.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{s: l.s, name: name}
}

func (l *Logger) SetLevel(min Level) {
	l.s.mu.Lock()
	l.s.min = min
	l.s.mu.Unlock()
}

func (l *Logger) Enabled(lv Level) bool {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return lv >= l.s.min
}

func (l *Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }

func (l *Logger) log(lv Level, msg string, kv []any) {
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if lv < s.min {
		return
	}
	b := append(s.buf[:0], lv.String()...)
	b = append(b, ':', ' ')
	if l.name != "" {
		b = append(b, l.name...)
		b = append(b, ':', ' ')
	}
	b = append(b, msg...)
	for i := 0; i < len(kv); i += 2 {
		b = append(b, ' ')
		if k, ok := kv[i].(string); ok {
			b = append(b, k...)
		} else {
			b = append(b, '?')
		}
		b = append(b, '=')
		if i+1 < len(kv) {
			b = appendValue(b, kv[i+1])
		} else {
			b = append(b, "MISSING"...)
		}
	}
	b = append(b, '\n')
	s.buf = b
	_, _ = s.w.Write(b)
}

type stringer interface{ String() string }

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(b, "nil"...)
	case string:
		return appendString(b, x)
	case []byte:
		return appendString(b, string(x))
	case bool:
		return strconv.AppendBool(b, x)
	case int:
		return strconv.AppendInt(b, int64(x), 10)
	case int8:
		return strconv.AppendInt(b, int64(x), 10)
	case int16:
		return strconv.AppendInt(b, int64(x), 10)
	case int32:
		return strconv.AppendInt(b, int64(x), 10)
	case int64:
		return strconv.AppendInt(b, x, 10)
	case uint:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint8:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(b, x, 10)
	case float32:
		return strconv.AppendFloat(b, float64(x), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(b, x, 'g', -1, 64)
	case time.Duration:
		return append(b, x.String()...)
	case error:
		return appendString(b, x.Error())
	case stringer:
		return appendString(b, x.String())
	default:
		return append(b, '?')
	}
}

// appendString quotes values containing spaces, quotes or control bytes.
func appendString(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c == '"' || c == '=' || c >= 0x7f {
			return strconv.AppendQuote(b, s)
		}
	}
	if s == "" {
		return append(b, `""`...)
	}
	return append(b, s...)
}
