// Package session drives the interactive loop: read one line, resolve it
// to an intent, dispatch to the matching flow, and repeat until exit.
// Processing is single-threaded and cooperative - one user turn completes
// fully (including at most one calibration probe and at most one full-cost
// engine call) before the next line is read.
package session

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"

	"github.com/doeshing/gensuite/internal/application/governor"
	"github.com/doeshing/gensuite/internal/application/resolver"
	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/ports"
)

// Flavor lines shown for unrecognized input. Never an error: the loop
// continues and the user is never dead-ended.
var flavorLines = []string{
	"That one is beyond me. Try 'pi', 'primes' or 'bench'.",
	"No computation matches that. 'help' lists what I can do.",
	"Hmm. The engine only speaks digits, primes and benchmarks.",
	"Interesting thought. Meanwhile, the primes aren't going anywhere.",
}

// Service sequences user interaction around the governor and the engine.
type Service struct {
	Config   ports.ConfigProvider
	Saver    ports.ConfigSaver
	Engine   ports.EngineRunner
	Governor *governor.Service
	Console  ports.Console
	Exporter ports.ResultExporter
	History  ports.HistoryRepository
	Logger   ports.Logger

	// PickFlavor selects a flavor line index; defaults to rand.Intn.
	PickFlavor func(n int) int
}

// Run enters the interactive loop and blocks until the user exits or a
// fatal error occurs. EOF on input ends the session cleanly.
func (s *Service) Run(ctx context.Context) error {
	if err := s.checkDeps(); err != nil {
		return err
	}
	s.Console.Banner()
	for {
		line, err := s.Console.ReadLine("gensuite> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			s.Console.Notice("Standing by. Type 'help' for commands.")
			continue
		}
		intent := resolver.Resolve(line)
		if intent == domain.IntentExit {
			s.Console.Print("Goodbye.")
			return nil
		}
		if err := s.Dispatch(ctx, intent); err != nil {
			if domain.IsFatal(err) {
				return err
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.Console.Notice(err.Error())
		}
	}
}

// RunOnce executes a single resolved intent, looping only for the
// interactive intent. This is the CLI-argument entry point.
func (s *Service) RunOnce(ctx context.Context, intent domain.Intent) error {
	if intent == domain.IntentInteractive {
		return s.Run(ctx)
	}
	if err := s.checkDeps(); err != nil {
		return err
	}
	if intent == domain.IntentExit {
		return nil
	}
	err := s.Dispatch(ctx, intent)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Dispatch routes one resolved intent to its flow.
func (s *Service) Dispatch(ctx context.Context, intent domain.Intent) error {
	switch intent {
	case domain.IntentPi:
		return s.piFlow(ctx)
	case domain.IntentPrimes:
		return s.primesFlow(ctx)
	case domain.IntentBench:
		return s.benchFlow(ctx)
	case domain.IntentHelp:
		return s.helpFlow(ctx)
	case domain.IntentHome:
		s.Console.Banner()
		return nil
	default:
		s.flavor()
		return nil
	}
}

func (s *Service) flavor() {
	pick := s.PickFlavor
	if pick == nil {
		pick = rand.Intn
	}
	s.Console.Print(flavorLines[pick(len(flavorLines))])
}

func (s *Service) checkDeps() error {
	if s.Config == nil || s.Engine == nil || s.Governor == nil || s.Console == nil {
		return errors.New("session.Service dependencies not satisfied")
	}
	return nil
}
