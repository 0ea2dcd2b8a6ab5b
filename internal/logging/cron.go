package logging

import (
	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// CronLogger пробрасывает логи robfig/cron в charmbracelet/log.
// Info у cron болтливый (start/schedule/wake), поэтому уходит в debug.
type CronLogger struct {
	L *log.Logger
}

var _ cron.Logger = CronLogger{}

func (c CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.L.Debug(msg, keysAndValues...)
}

func (c CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.L.Error(msg, append(keysAndValues, "err", err)...)
}
