package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the portal server and the ideactl CLI.
// Init(level) once at startup; With(...) returns a logger that prefixes
// every line with key=value fields.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
	exit               = os.Exit
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values select info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// SetOutput redirects all log output. Used by tests and by the CLI, which
// logs to stderr so stdout stays machine-readable.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func output(l Level, fields, format string, v ...interface{}) {
	if !shouldLog(l) {
		return
	}
	line := fmt.Sprintf("%s [%s] %s", time.Now().Format(time.RFC3339), strings.ToUpper(l.String()), fields)
	mu.RLock()
	out := logger
	mu.RUnlock()
	out.Printf(line+format, v...)
}

// Entry is a logger carrying a fixed set of fields.
type Entry struct {
	fields string
}

// With returns an Entry that prefixes messages with the given key/value
// pairs. An odd trailing key is logged with an empty value.
func With(kv ...interface{}) *Entry {
	return (&Entry{}).With(kv...)
}

// With extends the entry's fields.
func (e *Entry) With(kv ...interface{}) *Entry {
	var b strings.Builder
	b.WriteString(e.fields)
	for i := 0; i < len(kv); i += 2 {
		var val interface{} = ""
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		fmt.Fprintf(&b, "%v=%v ", kv[i], val)
	}
	return &Entry{fields: b.String()}
}

func (e *Entry) Debugf(format string, v ...interface{}) { output(LevelDebug, e.fields, format, v...) }
func (e *Entry) Infof(format string, v ...interface{})  { output(LevelInfo, e.fields, format, v...) }
func (e *Entry) Warnf(format string, v ...interface{})  { output(LevelWarn, e.fields, format, v...) }
func (e *Entry) Errorf(format string, v ...interface{}) { output(LevelError, e.fields, format, v...) }

func Debugf(format string, v ...interface{}) { output(LevelDebug, "", format, v...) }
func Infof(format string, v ...interface{})  { output(LevelInfo, "", format, v...) }
func Warnf(format string, v ...interface{})  { output(LevelWarn, "", format, v...) }
func Errorf(format string, v ...interface{}) { output(LevelError, "", format, v...) }

// Fatalf logs regardless of level and exits the process.
func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	out := logger
	mu.RUnlock()
	out.Printf(fmt.Sprintf("%s [FATAL] ", time.Now().Format(time.RFC3339))+format, v...)
	exit(1)
}

func Info(v string) { Infof("%s", v) }
func Warn(v string) { Warnf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}
