// Package engine adapts the external gensuite-helper binary behind the
// ports.EngineRunner contract.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/ports"
)

// Local invokes the compute engine as a child process, one spawn per call.
type Local struct {
	binary string
	path   string
}

// NewLocal builds a runner for the given binary name or path. An empty
// name falls back to the GENSUITE_ENGINE env var, then to
// "gensuite-helper" looked up on PATH.
func NewLocal(binary string) *Local {
	if binary == "" {
		binary = os.Getenv("GENSUITE_ENGINE")
	}
	if binary == "" {
		binary = "gensuite-helper"
	}
	return &Local{binary: binary}
}

// Locate resolves the engine binary, caching the result.
func (e *Local) Locate() (string, error) {
	if e.path != "" {
		return e.path, nil
	}
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return "", &domain.EngineUnavailableError{Binary: e.binary, Err: err}
	}
	e.path = path
	return path, nil
}

// Run implements ports.EngineRunner. Elapsed time is wall-clock, measured
// here with the monotonic clock; the engine reports nothing itself.
func (e *Local) Run(ctx context.Context, kind domain.WorkloadKind, magnitude int) (domain.EngineResult, error) {
	if magnitude < 1 {
		return domain.EngineResult{}, fmt.Errorf("engine: magnitude must be positive, got %d", magnitude)
	}
	path, err := e.Locate()
	if err != nil {
		return domain.EngineResult{}, err
	}

	cmd := exec.CommandContext(ctx, path, string(kind), strconv.Itoa(magnitude))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		exitCode := -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return domain.EngineResult{}, &domain.EngineExecutionError{
			Kind:      kind,
			Magnitude: magnitude,
			ExitCode:  exitCode,
			Stderr:    strings.TrimSpace(stderr.String()),
			Err:       runErr,
		}
	}

	return domain.EngineResult{
		Output:  strings.TrimRight(stdout.String(), "\n"),
		Elapsed: elapsed,
	}, nil
}

var _ ports.EngineRunner = (*Local)(nil)
