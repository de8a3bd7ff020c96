package cmdlog

import (
	"time"

	"artistpulse/internal/logging"
	"artistpulse/internal/metrics"
)

// Run executes f as the named CLI command, counting and logging the outcome.
func Run(log logging.Logger, cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	entry := log.WithFields(logging.Fields{"cmd": cmd, "duration_ms": time.Since(start).Milliseconds()})
	if err != nil {
		metrics.IncCommandError(cmd)
		entry.WithError(err).Error(cmd + "_error")
	} else {
		entry.Info(cmd + "_ok")
	}
	return err
}
