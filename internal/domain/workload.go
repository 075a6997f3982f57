// Package domain defines core entities and value objects for gensuite.
//
// The domain layer is independent of infrastructure concerns: workload
// kinds and their bounds, calibration samples and derived rates, time-cap
// decisions, configuration, and run history records all live here.
package domain

import "time"

// WorkloadKind identifies a computation category routed to the compute engine.
type WorkloadKind string

const (
	WorkloadPi          WorkloadKind = "pi"
	WorkloadPrimes      WorkloadKind = "primes"
	WorkloadBenchMatmul WorkloadKind = "bench-matmul"
	WorkloadBenchBigint WorkloadKind = "bench-bigint"
	WorkloadBenchSieve  WorkloadKind = "bench-sieve"
)

// Magnitude bounds per flow. Benchmark durations come from BenchDurations
// instead of a continuous range.
const (
	MinMagnitude  = 1
	MaxPiDigits   = 50000
	MaxPrimeCount = 100000
)

// BenchDurations is the closed set of per-suite benchmark durations, in seconds.
var BenchDurations = []int{10, 30, 60, 120}

// Unit names the magnitude unit for display purposes.
func (k WorkloadKind) Unit() string {
	switch k {
	case WorkloadPi:
		return "digits"
	case WorkloadPrimes:
		return "primes"
	default:
		return "seconds"
	}
}

// IsBench reports whether the kind is one of the benchmark suites.
func (k WorkloadKind) IsBench() bool {
	switch k {
	case WorkloadBenchMatmul, WorkloadBenchBigint, WorkloadBenchSieve:
		return true
	}
	return false
}

// Request pairs a workload kind with its magnitude for one engine call.
type Request struct {
	Kind      WorkloadKind
	Magnitude int
}

// EngineResult is the raw output of one engine invocation plus the elapsed
// wall-clock time measured by the caller around the process wait.
type EngineResult struct {
	Output  string
	Elapsed time.Duration
}

// MaxMagnitudeFor returns the upper magnitude bound for a governed workload.
func MaxMagnitudeFor(kind WorkloadKind) int {
	switch kind {
	case WorkloadPi:
		return MaxPiDigits
	case WorkloadPrimes:
		return MaxPrimeCount
	default:
		return BenchDurations[len(BenchDurations)-1]
	}
}

// ValidateMagnitude checks a magnitude against the declared bounds for its
// workload kind. Benchmark kinds accept only the fixed duration set.
func ValidateMagnitude(kind WorkloadKind, magnitude int) error {
	if kind.IsBench() {
		if !ValidBenchDuration(magnitude) {
			return &ValidationError{Field: "duration", Value: magnitude, Min: BenchDurations[0], Max: BenchDurations[len(BenchDurations)-1]}
		}
		return nil
	}
	max := MaxMagnitudeFor(kind)
	if magnitude < MinMagnitude || magnitude > max {
		return &ValidationError{Field: kind.Unit(), Value: magnitude, Min: MinMagnitude, Max: max}
	}
	return nil
}

// ValidBenchDuration reports whether sec is one of the allowed durations.
func ValidBenchDuration(sec int) bool {
	for _, d := range BenchDurations {
		if sec == d {
			return true
		}
	}
	return false
}
