package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/gensuite/internal/domain"
)

const helpText = `Commands:
  pi       generate decimal digits of pi
  primes   enumerate the first N prime numbers
  bench    run a compute benchmark suite (matmul, bigint, sieve)
  home     show the main menu
  help     this text, plus settings
  exit     leave gensuite

Free text works too: "run primes", "pi please", "benchmark it".`

// startOrBack presents the Start/Back sub-choice for a flow. Back returns
// to the prompt without side effects.
func (s *Service) startOrBack(title string) (bool, error) {
	s.Console.Print(title)
	for {
		line, err := s.Console.ReadLine("[1] Start  [2] Back > ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "start", "s":
			return true, nil
		case "2", "back", "b":
			return false, nil
		}
		s.Console.Notice("Enter 1 to start or 2 to go back.")
	}
}

// readMagnitude collects a bounded integer, re-prompting until valid.
// An empty line takes the fallback.
func (s *Service) readMagnitude(kind domain.WorkloadKind, prompt string, fallback int) (int, error) {
	for {
		line, err := s.Console.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			s.Console.Notice(fmt.Sprintf("Enter a whole number of %s.", kind.Unit()))
			continue
		}
		if vErr := domain.ValidateMagnitude(kind, n); vErr != nil {
			s.Console.Notice(vErr.Error())
			continue
		}
		return n, nil
	}
}

// runEngine issues the full-cost engine call with a working indicator.
func (s *Service) runEngine(ctx context.Context, kind domain.WorkloadKind, magnitude int) (domain.EngineResult, error) {
	stop := s.Console.Working(fmt.Sprintf("Running %s at %s %s", kind, domain.FormatCount(magnitude), kind.Unit()))
	res, err := s.Engine.Run(ctx, kind, magnitude)
	stop()
	return res, err
}

// finishRun offers export and records the run in history.
func (s *Service) finishRun(kind domain.WorkloadKind, magnitude int, capped bool, res domain.EngineResult, rate domain.Rate) {
	exported := ""
	if s.Exporter != nil {
		path, err := s.Exporter.Offer(string(kind), res.Output)
		if err != nil {
			s.Console.Notice("Export failed: " + err.Error())
		} else {
			exported = path
		}
	}
	if s.History == nil {
		return
	}
	rec := domain.RunRecord{
		Timestamp:  time.Now(),
		Kind:       kind,
		Magnitude:  magnitude,
		Capped:     capped,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		Rate:       float64(rate),
		ExportedTo: exported,
	}
	if err := s.History.Save(rec); err != nil && s.Logger != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) piFlow(ctx context.Context) error {
	start, err := s.startOrBack("Pi digits: generate N decimal digits of pi.")
	if err != nil || !start {
		return err
	}

	prompt := fmt.Sprintf("Digits [1-%s, default 50] > ", domain.FormatCount(domain.MaxPiDigits))
	digits, err := s.readMagnitude(domain.WorkloadPi, prompt, 50)
	if err != nil {
		return err
	}

	// Informational estimate only. The pi flow never opens the cap dialog;
	// only the primes flow enforces a budget.
	est, err := s.Governor.Probe(ctx, domain.WorkloadPi, digits)
	if err != nil {
		return err
	}
	if eta, ok := est.ETA(digits); ok {
		s.Console.Notice(fmt.Sprintf("Measured %s, estimated %s for %s digits.",
			domain.FormatRate(est.Rate, "digits"), domain.FormatDuration(eta), domain.FormatCount(digits)))
	}

	res, err := s.runEngine(ctx, domain.WorkloadPi, digits)
	if err != nil {
		return err
	}

	s.Console.Result(res.Output)
	realized := domain.CalibrationSample{Magnitude: digits, Elapsed: res.Elapsed}.Rate()
	s.Console.Print(fmt.Sprintf("%s digits in %s (%s).",
		domain.FormatCount(digits), domain.FormatDuration(res.Elapsed), domain.FormatRate(realized, "digits")))
	s.finishRun(domain.WorkloadPi, digits, false, res, realized)
	return nil
}

func (s *Service) primesFlow(ctx context.Context) error {
	start, err := s.startOrBack("Primes: enumerate the first N prime numbers.")
	if err != nil || !start {
		return err
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return err
	}
	budget := cfg.PrimesBudget()

	prompt := fmt.Sprintf("How many primes [1-%s, default 15] > ", domain.FormatCount(domain.MaxPrimeCount))
	count, err := s.readMagnitude(domain.WorkloadPrimes, prompt, 15)
	if err != nil {
		return err
	}

	approved := 0
	capped := false
	for {
		decision, est, err := s.Governor.EstimateAndCap(ctx, domain.WorkloadPrimes, count, budget)
		if err != nil {
			return err
		}
		switch decision.Outcome {
		case domain.OutcomeProceed:
			if eta, ok := est.ETA(decision.Magnitude); ok {
				s.Console.Notice(fmt.Sprintf("Measured %s, estimated %s for %s primes.",
					domain.FormatRate(est.Rate, "primes"), domain.FormatDuration(eta), domain.FormatCount(decision.Magnitude)))
			}
			approved = decision.Magnitude
		case domain.OutcomeCapped:
			s.Console.Notice(fmt.Sprintf("Using %s primes to stay within %s.",
				domain.FormatCount(decision.Magnitude), domain.FormatDuration(budget)))
			approved = decision.Magnitude
			capped = true
		case domain.OutcomeRetry:
			count, err = s.readMagnitude(domain.WorkloadPrimes, prompt, count)
			if err != nil {
				return err
			}
			continue
		case domain.OutcomeCancelled:
			s.Console.Notice("Cancelled. Nothing was computed.")
			return nil
		}
		break
	}

	res, err := s.runEngine(ctx, domain.WorkloadPrimes, approved)
	if err != nil {
		return err
	}

	s.Console.Result(res.Output)
	realized := domain.CalibrationSample{Magnitude: approved, Elapsed: res.Elapsed}.Rate()
	s.Console.Print(fmt.Sprintf("%s primes in %s (%s).",
		domain.FormatCount(approved), domain.FormatDuration(res.Elapsed), domain.FormatRate(realized, "primes")))
	s.finishRun(domain.WorkloadPrimes, approved, capped, res, realized)
	return nil
}

var benchSuites = []struct {
	label string
	kind  domain.WorkloadKind
}{
	{"matmul", domain.WorkloadBenchMatmul},
	{"bigint", domain.WorkloadBenchBigint},
	{"sieve", domain.WorkloadBenchSieve},
}

func (s *Service) benchFlow(ctx context.Context) error {
	start, err := s.startOrBack("Benchmarks: stress one compute suite for a fixed duration.")
	if err != nil || !start {
		return err
	}

	var kind domain.WorkloadKind
	for kind == "" {
		line, err := s.Console.ReadLine("[1] matmul  [2] bigint  [3] sieve > ")
		if err != nil {
			return err
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		for i, suite := range benchSuites {
			if choice == strconv.Itoa(i+1) || choice == suite.label {
				kind = suite.kind
				break
			}
		}
		if kind == "" {
			s.Console.Notice("Pick a suite: 1, 2 or 3.")
		}
	}

	var durations []string
	for _, d := range domain.BenchDurations {
		durations = append(durations, strconv.Itoa(d))
	}
	prompt := fmt.Sprintf("Duration seconds (%s) [default 60] > ", strings.Join(durations, ", "))
	seconds, err := s.readMagnitude(kind, prompt, 60)
	if err != nil {
		return err
	}

	// The chosen duration is the cap by construction; no calibration here.
	res, err := s.runEngine(ctx, kind, seconds)
	if err != nil {
		return err
	}

	s.Console.Result(res.Output)
	s.Console.Print(fmt.Sprintf("%s finished in %s.", kind, domain.FormatDuration(res.Elapsed)))
	s.finishRun(kind, seconds, false, res, 0)
	return nil
}

func (s *Service) helpFlow(ctx context.Context) error {
	s.Console.Print(helpText)
	for {
		line, err := s.Console.ReadLine("[1] Color scheme  [2] Animations  [3] Back > ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "scheme", "color":
			if err := s.pickScheme(ctx); err != nil {
				return err
			}
		case "2", "animations", "animation":
			if err := s.toggleAnimations(ctx); err != nil {
				return err
			}
		case "3", "back", "b", "":
			return nil
		default:
			s.Console.Notice("Enter 1, 2 or 3.")
		}
	}
}

func (s *Service) pickScheme(ctx context.Context) error {
	names := domain.SchemeNames()
	var items []string
	for i, n := range names {
		items = append(items, fmt.Sprintf("[%d] %s", i+1, n))
	}
	for {
		line, err := s.Console.ReadLine(strings.Join(items, "  ") + " > ")
		if err != nil {
			return err
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		if choice == "" {
			return nil
		}
		for i, n := range names {
			if choice == strconv.Itoa(i+1) || choice == n {
				return s.mutateConfig(ctx, func(cfg *domain.Config) string {
					cfg.UI.Scheme = n
					return "Color scheme set to " + n + ". Applies on next start."
				})
			}
		}
		s.Console.Notice("Pick one of the listed schemes.")
	}
}

func (s *Service) toggleAnimations(ctx context.Context) error {
	return s.mutateConfig(ctx, func(cfg *domain.Config) string {
		cfg.UI.Animations = !cfg.UI.Animations
		if cfg.UI.Animations {
			return "Animations enabled. Applies on next start."
		}
		return "Animations disabled. Applies on next start."
	})
}

func (s *Service) mutateConfig(ctx context.Context, mutate func(*domain.Config) string) error {
	if s.Saver == nil {
		s.Console.Notice("Settings are read-only in this session.")
		return nil
	}
	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return err
	}
	msg := mutate(&cfg)
	if err := s.Saver.Save(ctx, cfg); err != nil {
		s.Console.Notice("Could not save settings: " + err.Error())
		return nil
	}
	s.Console.Notice(msg)
	return nil
}
