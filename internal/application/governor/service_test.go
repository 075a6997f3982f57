package governor

import (
	"context"
	"testing"
	"time"

	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/pkg/logger"
)

type stubEngine struct {
	calls   []domain.Request
	elapsed map[int]time.Duration
	err     error
}

func (s *stubEngine) Run(_ context.Context, kind domain.WorkloadKind, magnitude int) (domain.EngineResult, error) {
	s.calls = append(s.calls, domain.Request{Kind: kind, Magnitude: magnitude})
	if s.err != nil {
		return domain.EngineResult{}, s.err
	}
	return domain.EngineResult{Output: "x", Elapsed: s.elapsed[magnitude]}, nil
}

type stubPrompter struct {
	calls   int
	choices []domain.CapChoice
}

func (s *stubPrompter) ChooseCap(domain.WorkloadKind, int, int, time.Duration) (domain.CapChoice, error) {
	s.calls++
	if len(s.choices) == 0 {
		return domain.CapCancel, nil
	}
	choice := s.choices[0]
	s.choices = s.choices[1:]
	return choice, nil
}

func newService(engine *stubEngine, prompter *stubPrompter) *Service {
	return &Service{Engine: engine, Prompter: prompter, Logger: logger.NewStd(false)}
}

func TestProbeUsesCalibrationCeiling(t *testing.T) {
	engine := &stubEngine{elapsed: map[int]time.Duration{30: 3 * time.Millisecond}}
	svc := newService(engine, &stubPrompter{})

	est, err := svc.Probe(context.Background(), domain.WorkloadPi, 20000)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if len(engine.calls) != 1 || engine.calls[0].Magnitude != 30 {
		t.Fatalf("probe calls = %+v, want one call at magnitude 30", engine.calls)
	}
	if !est.Rate.Known() {
		t.Fatal("expected a known rate")
	}
	if float64(est.Rate) != 10000 {
		t.Errorf("rate = %v, want 10000", float64(est.Rate))
	}
}

func TestProbeClampsToRequestedMagnitude(t *testing.T) {
	engine := &stubEngine{elapsed: map[int]time.Duration{10: time.Millisecond}}
	svc := newService(engine, &stubPrompter{})

	if _, err := svc.Probe(context.Background(), domain.WorkloadPi, 10); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if engine.calls[0].Magnitude != 10 {
		t.Errorf("probe magnitude = %d, want 10 (requested below ceiling)", engine.calls[0].Magnitude)
	}
}

func TestEstimateAndCapProceedsUnderBudget(t *testing.T) {
	// 40 primes in 4ms: 10,000 primes/s, so 5,000 fits a 30s budget easily.
	engine := &stubEngine{elapsed: map[int]time.Duration{40: 4 * time.Millisecond}}
	prompter := &stubPrompter{}
	svc := newService(engine, prompter)

	decision, _, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err != nil {
		t.Fatalf("EstimateAndCap() error = %v", err)
	}
	if decision.Outcome != domain.OutcomeProceed || decision.Magnitude != 5000 {
		t.Errorf("decision = %+v, want Proceed(5000)", decision)
	}
	if prompter.calls != 0 {
		t.Error("cap dialog must not be shown for an in-budget request")
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine calls = %d, want exactly the probe", len(engine.calls))
	}
}

func TestEstimateAndCapAcceptCappedMagnitude(t *testing.T) {
	// 40 primes in 400ms: 100 primes/s, so a 30s budget caps at 3,000.
	engine := &stubEngine{elapsed: map[int]time.Duration{40: 400 * time.Millisecond}}
	prompter := &stubPrompter{choices: []domain.CapChoice{domain.CapAccept}}
	svc := newService(engine, prompter)

	decision, est, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err != nil {
		t.Fatalf("EstimateAndCap() error = %v", err)
	}
	if decision.Outcome != domain.OutcomeCapped {
		t.Fatalf("outcome = %v, want Capped", decision.Outcome)
	}
	if max := est.Rate.MaxMagnitude(30 * time.Second); decision.Magnitude > max {
		t.Errorf("capped magnitude %d exceeds budget maximum %d", decision.Magnitude, max)
	}
	if decision.Magnitude != 3000 {
		t.Errorf("capped magnitude = %d, want 3000", decision.Magnitude)
	}
	if prompter.calls != 1 {
		t.Errorf("prompter calls = %d, want 1", prompter.calls)
	}
	// The governor never issues the full-cost call; it only probed.
	if len(engine.calls) != 1 || engine.calls[0].Magnitude != 40 {
		t.Errorf("engine calls = %+v, want only the probe at 40", engine.calls)
	}
}

func TestEstimateAndCapRetrySignal(t *testing.T) {
	engine := &stubEngine{elapsed: map[int]time.Duration{40: 400 * time.Millisecond}}
	prompter := &stubPrompter{choices: []domain.CapChoice{domain.CapRetry}}
	svc := newService(engine, prompter)

	decision, _, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err != nil {
		t.Fatalf("EstimateAndCap() error = %v", err)
	}
	if decision.Outcome != domain.OutcomeRetry {
		t.Errorf("outcome = %v, want Retry", decision.Outcome)
	}
	if decision.Magnitude != 0 {
		t.Errorf("retry decision carries magnitude %d, want none", decision.Magnitude)
	}
}

func TestEstimateAndCapCancelled(t *testing.T) {
	engine := &stubEngine{elapsed: map[int]time.Duration{40: 400 * time.Millisecond}}
	prompter := &stubPrompter{choices: []domain.CapChoice{domain.CapCancel}}
	svc := newService(engine, prompter)

	decision, _, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err != nil {
		t.Fatalf("EstimateAndCap() error = %v", err)
	}
	if decision.Outcome != domain.OutcomeCancelled {
		t.Errorf("outcome = %v, want Cancelled", decision.Outcome)
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine calls = %d; cancellation must leave only the probe", len(engine.calls))
	}
}

// TestUnknownRateBypassesCap: a zero-elapsed probe degrades gracefully by
// allowing the requested magnitude unchanged instead of blocking the user.
func TestUnknownRateBypassesCap(t *testing.T) {
	engine := &stubEngine{elapsed: map[int]time.Duration{}} // zero elapsed
	prompter := &stubPrompter{}
	svc := newService(engine, prompter)

	decision, est, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err != nil {
		t.Fatalf("EstimateAndCap() error = %v", err)
	}
	if est.Rate.Known() {
		t.Fatal("expected an unknown rate")
	}
	if decision.Outcome != domain.OutcomeProceed || decision.Magnitude != 5000 {
		t.Errorf("decision = %+v, want Proceed(5000)", decision)
	}
	if prompter.calls != 0 {
		t.Error("cap dialog must not open on a measurement artifact")
	}
}

func TestEstimateAndCapPropagatesEngineError(t *testing.T) {
	engine := &stubEngine{err: &domain.EngineExecutionError{Kind: domain.WorkloadPrimes, ExitCode: 1}}
	svc := newService(engine, &stubPrompter{})

	_, _, err := svc.EstimateAndCap(context.Background(), domain.WorkloadPrimes, 5000, 30*time.Second)
	if err == nil {
		t.Fatal("expected engine error to propagate")
	}
	if !domain.IsFatal(err) {
		t.Errorf("engine error should be fatal, got %v", err)
	}
}
