package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatWindow describes a display window, e.g. "1s @ 100 sps".
func FormatWindow(seconds int, sampleRate float64) string {
	return fmt.Sprintf("%ds @ %g sps", seconds, sampleRate)
}
