// Package report carries progress messages from the scaffolding pipeline to
// the user, either as console lines or as structured log records.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Level classifies a message.
type Level int

const (
	Step Level = iota
	Info
	OK
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Step:
		return "step"
	case Info:
		return "info"
	case OK:
		return "ok"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Reporter receives progress messages.
type Reporter interface {
	Report(level Level, msg string)
}

// Console writes one line per message. Warnings and errors go to Err.
type Console struct {
	Out io.Writer
	Err io.Writer
}

var markers = map[Level]string{
	Step:  "==>",
	Info:  "   ",
	OK:    "[ OK ]",
	Warn:  "[WARN]",
	Error: "[FAIL]",
}

// Report implements Reporter.
func (c *Console) Report(level Level, msg string) {
	w := c.Out
	if level >= Warn && c.Err != nil {
		w = c.Err
	}
	if w == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", markers[level], msg)
}

// Structured emits each message as a slog record.
type Structured struct {
	Logger *slog.Logger
}

// NewJSON returns a Structured reporter writing JSON lines to w.
func NewJSON(w io.Writer) *Structured {
	return &Structured{Logger: slog.New(slog.NewJSONHandler(w, nil))}
}

// Report implements Reporter.
func (s *Structured) Report(level Level, msg string) {
	lvl := slog.LevelInfo
	switch level {
	case Warn:
		lvl = slog.LevelWarn
	case Error:
		lvl = slog.LevelError
	}
	s.Logger.Log(context.Background(), lvl, msg, slog.String("kind", level.String()))
}

// Discard drops every message.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Level, string) {}
