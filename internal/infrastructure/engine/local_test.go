package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/doeshing/gensuite/internal/domain"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-engine")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunCapturesOutputAndElapsed(t *testing.T) {
	path := writeScript(t, `printf '3.14159\n'`)
	runner := NewLocal(path)

	res, err := runner.Run(context.Background(), domain.WorkloadPi, 5)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Output != "3.14159" {
		t.Errorf("output = %q, want trimmed digit string", res.Output)
	}
	if res.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want a positive measurement", res.Elapsed)
	}
}

func TestRunPassesKindAndMagnitude(t *testing.T) {
	path := writeScript(t, `printf '%s %s\n' "$1" "$2"`)
	runner := NewLocal(path)

	res, err := runner.Run(context.Background(), domain.WorkloadBenchSieve, 42)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Output != "bench-sieve 42" {
		t.Errorf("engine argv = %q, want %q", res.Output, "bench-sieve 42")
	}
}

func TestRunFailureYieldsExecutionError(t *testing.T) {
	path := writeScript(t, `echo "boom" >&2; exit 3`)
	runner := NewLocal(path)

	_, err := runner.Run(context.Background(), domain.WorkloadPrimes, 10)
	if err == nil {
		t.Fatal("expected an execution error")
	}
	var execErr *domain.EngineExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *EngineExecutionError", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", execErr.ExitCode)
	}
	if execErr.Stderr != "boom" {
		t.Errorf("stderr = %q, want %q", execErr.Stderr, "boom")
	}
	if !domain.IsFatal(err) {
		t.Error("execution errors are fatal")
	}
}

func TestLocateMissingBinary(t *testing.T) {
	runner := NewLocal(filepath.Join(t.TempDir(), "no-such-engine"))

	_, err := runner.Locate()
	if err == nil {
		t.Fatal("expected a lookup failure")
	}
	var unavailable *domain.EngineUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error type = %T, want *EngineUnavailableError", err)
	}
}

func TestRunRejectsNonPositiveMagnitude(t *testing.T) {
	runner := NewLocal("gensuite-helper")
	if _, err := runner.Run(context.Background(), domain.WorkloadPi, 0); err == nil {
		t.Fatal("expected a rejection for magnitude 0")
	}
}
