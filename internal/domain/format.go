package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a duration for display. The thresholds are a
// contract: below ten seconds two decimal places, ten to sixty seconds one
// decimal place, sixty seconds and above whole minutes plus rounded seconds.
func FormatDuration(d time.Duration) string {
	s := d.Seconds()
	switch {
	case s < 10:
		return fmt.Sprintf("%.2fs", s)
	case s < 60:
		return fmt.Sprintf("%.1fs", s)
	default:
		total := int(math.Round(s))
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	}
}

// FormatRate renders a throughput with its unit. Rates of ten per second
// and above are shown as comma-grouped whole numbers.
func FormatRate(r Rate, unit string) string {
	if !r.Known() {
		return "rate unknown"
	}
	v := float64(r)
	if v >= 10 {
		return fmt.Sprintf("%s %s/s", humanize.Comma(int64(math.Round(v))), unit)
	}
	return fmt.Sprintf("%.2f %s/s", v, unit)
}

// FormatCount comma-groups a magnitude for display.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
