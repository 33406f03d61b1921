package obs

import (
	"fmt"
	"log"
	"strings"

	"go.uber.org/atomic"
)

// Level orders log lines by severity. Names follow the LOG_LEVEL setting.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string { return levelNames[l] }

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid log level %q: must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL", s)
}

var threshold = atomic.NewInt32(int32(LevelInfo))

// SetLevel drops every line below l.
func SetLevel(l Level) { threshold.Store(int32(l)) }

func Enabled(l Level) bool { return int32(l) >= threshold.Load() }

func logf(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	log.Printf("level="+l.String()+" "+format, args...)
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarning, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }
