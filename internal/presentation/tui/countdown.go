package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Countdown formats remaining seconds as m:ss, red when urgent.
type Countdown struct {
	out *termenv.Output
}

// NewCountdown creates a Countdown styled for w's colour profile.
func NewCountdown(w io.Writer, opts ...termenv.OutputOption) *Countdown {
	return &Countdown{out: termenv.NewOutput(w, opts...)}
}

// Format renders seconds. Negative values clamp to zero.
func (c *Countdown) Format(seconds int, urgent bool) string {
	seconds = max(0, seconds)
	text := fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	s := c.out.String(text).Bold()
	if urgent {
		return s.Foreground(c.out.Color("#ef4444")).String()
	}
	return s.Foreground(c.out.Color("#22c55e")).String()
}
