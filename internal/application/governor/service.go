// Package governor implements workload calibration and time-cap
// enforcement: a cheap probe through the engine adapter yields a
// throughput rate, and requests projected to exceed the wall-clock budget
// are renegotiated with the user before any full-cost call is issued.
package governor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/ports"
)

// Calibration ceilings per workload kind: large enough to produce a
// measurable duration, small enough to be near-instant.
var calibrationCeiling = map[domain.WorkloadKind]int{
	domain.WorkloadPi:     30,
	domain.WorkloadPrimes: 40,
}

const defaultCeiling = 25

// Service turns a requested magnitude into either an approved magnitude or
// a cancellation, spending at most one cheap probe per decision. The
// full-cost engine call is never issued here; the caller owns it.
type Service struct {
	Engine   ports.EngineRunner
	Prompter ports.CapPrompter
	Logger   ports.Logger
}

// Estimate is the outcome of one calibration probe.
type Estimate struct {
	Sample domain.CalibrationSample
	Rate   domain.Rate
}

// ETA projects the duration of a run at the measured rate. The second
// return is false when the rate is unknown.
func (e Estimate) ETA(magnitude int) (time.Duration, bool) {
	return e.Rate.ETA(magnitude)
}

// Probe runs one cheap engine call at min(ceiling, requested) and derives
// a throughput rate from the measured elapsed time.
func (s *Service) Probe(ctx context.Context, kind domain.WorkloadKind, requested int) (Estimate, error) {
	if s.Engine == nil {
		return Estimate{}, errors.New("governor.Service engine not set")
	}
	if requested < 1 {
		return Estimate{}, fmt.Errorf("probe magnitude must be positive, got %d", requested)
	}

	probe, ok := calibrationCeiling[kind]
	if !ok {
		probe = defaultCeiling
	}
	if requested < probe {
		probe = requested
	}

	res, err := s.Engine.Run(ctx, kind, probe)
	if err != nil {
		return Estimate{}, err
	}

	sample := domain.CalibrationSample{Magnitude: probe, Elapsed: res.Elapsed}
	est := Estimate{Sample: sample, Rate: sample.Rate()}
	if s.Logger != nil {
		s.Logger.Debug("calibration probe", map[string]interface{}{
			"kind":      string(kind),
			"magnitude": probe,
			"elapsed":   res.Elapsed.String(),
			"rate":      float64(est.Rate),
		})
	}
	return est, nil
}

// EstimateAndCap decides whether the requested magnitude fits within
// budget. When the measured rate is unknown the request is allowed
// unchanged - a measurement artifact must not block the user. When the
// projection exceeds the budget, the user chooses between the capped
// magnitude, retrying with a new magnitude (the caller loops back and a
// fresh probe keeps the estimate current), or cancelling.
func (s *Service) EstimateAndCap(ctx context.Context, kind domain.WorkloadKind, requested int, budget time.Duration) (domain.TimeCapDecision, Estimate, error) {
	est, err := s.Probe(ctx, kind, requested)
	if err != nil {
		return domain.TimeCapDecision{}, Estimate{}, err
	}

	if !est.Rate.Known() {
		return domain.TimeCapDecision{Outcome: domain.OutcomeProceed, Magnitude: requested}, est, nil
	}

	maxMagnitude := est.Rate.MaxMagnitude(budget)
	if requested <= maxMagnitude {
		return domain.TimeCapDecision{Outcome: domain.OutcomeProceed, Magnitude: requested}, est, nil
	}

	if s.Prompter == nil {
		// Non-interactive callers get the capped magnitude directly.
		return domain.TimeCapDecision{Outcome: domain.OutcomeCapped, Magnitude: maxMagnitude}, est, nil
	}

	eta, _ := est.ETA(requested)
	choice, err := s.Prompter.ChooseCap(kind, requested, maxMagnitude, eta)
	if err != nil {
		return domain.TimeCapDecision{}, est, err
	}

	switch choice {
	case domain.CapAccept:
		return domain.TimeCapDecision{Outcome: domain.OutcomeCapped, Magnitude: maxMagnitude}, est, nil
	case domain.CapRetry:
		return domain.TimeCapDecision{Outcome: domain.OutcomeRetry}, est, nil
	default:
		return domain.TimeCapDecision{Outcome: domain.OutcomeCancelled}, est, nil
	}
}
