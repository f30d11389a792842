package alert

import (
	"fmt"
	"io"
	"os"
	"time"

	"medtrack/internal/domain"
)

// ConsoleSink writes alerts to a terminal, ringing the bell.
type ConsoleSink struct {
	Out io.Writer
}

var _ Sink = (*ConsoleSink)(nil)

func (s *ConsoleSink) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

// Warn prints an approaching-time alert.
func (s *ConsoleSink) Warn(r domain.Reminder, in time.Duration) {
	fmt.Fprintf(s.out(), "\a[upcoming] %s at %s (in %s)\n",
		r.Title, r.DateTime.Local().Format("15:04"), in.Round(time.Second))
}

// Due prints an at-time alert.
func (s *ConsoleSink) Due(r domain.Reminder) {
	fmt.Fprintf(s.out(), "\a\a[due now] %s\n", r.Title)
}
