package domain

import (
	"math"
	"time"
)

// CalibrationSample records one cheap probe invocation of the engine.
type CalibrationSample struct {
	Magnitude int
	Elapsed   time.Duration
}

// Rate is throughput in magnitude units per second. The zero value means
// "rate unknown" and must never be treated as a measured rate.
type Rate float64

// Rate derives a throughput rate from the sample. A zero or degenerate
// measurement yields the unknown rate rather than a division artifact.
func (s CalibrationSample) Rate() Rate {
	if s.Magnitude <= 0 || s.Elapsed <= 0 {
		return 0
	}
	r := float64(s.Magnitude) / s.Elapsed.Seconds()
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0
	}
	return Rate(r)
}

// Known reports whether the rate was actually measured.
func (r Rate) Known() bool {
	return r > 0
}

// MaxMagnitude returns the largest magnitude expected to finish within
// budget at this rate, floored to at least 1. Zero for an unknown rate.
func (r Rate) MaxMagnitude(budget time.Duration) int {
	if !r.Known() {
		return 0
	}
	m := int(math.Floor(float64(r) * budget.Seconds()))
	if m < 1 {
		m = 1
	}
	return m
}

// ETA projects the wall-clock time for magnitude at this rate.
func (r Rate) ETA(magnitude int) (time.Duration, bool) {
	if !r.Known() || magnitude <= 0 {
		return 0, false
	}
	return time.Duration(float64(magnitude) / float64(r) * float64(time.Second)), true
}

// CapOutcome enumerates governor decisions for one requested magnitude.
type CapOutcome int

const (
	// OutcomeProceed approves the requested magnitude unchanged.
	OutcomeProceed CapOutcome = iota
	// OutcomeCapped approves a reduced magnitude that fits the budget.
	OutcomeCapped
	// OutcomeRetry signals the caller to collect a new magnitude and ask again.
	OutcomeRetry
	// OutcomeCancelled abandons the request without a full-cost engine call.
	OutcomeCancelled
)

// TimeCapDecision is the governor's answer for one requested magnitude.
// Magnitude is meaningful only for Proceed and Capped outcomes.
type TimeCapDecision struct {
	Outcome   CapOutcome
	Magnitude int
}

// CapChoice is the user's answer in the over-budget dialog.
type CapChoice int

const (
	CapAccept CapChoice = iota
	CapRetry
	CapCancel
)
