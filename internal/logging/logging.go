// Package logging — общий логгер бота (charmbracelet/log) и адаптеры к нему.
package logging

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
)

// New строит корневой логгер. level: debug|info|warn|error ("" = info).
func New(w io.Writer, level string) (*log.Logger, error) {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	l.SetLevel(lvl)
	return l, nil
}

// Discard — логгер для тестов.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Recover — для defer в горутинах: паника логируется, процесс живёт.
//
//	go func() {
//	    defer logging.Recover(l, "register commands")
//	    ...
//	}()
func Recover(l *log.Logger, what string) {
	if r := recover(); r != nil {
		l.Error("panic recovered", "in", what, "panic", r, "stack", string(debug.Stack()))
	}
}
