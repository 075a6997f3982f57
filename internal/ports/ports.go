// Package ports defines the interfaces between the application core and
// external adapters (infrastructure), following the Ports and Adapters
// pattern: application services depend on these abstractions, and the
// concrete implementations live under internal/infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/gensuite/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.gensuite/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ConfigSaver persists configuration mutated by the settings sub-flow.
type ConfigSaver interface {
	Save(context.Context, domain.Config) error
}

// EngineRunner invokes the external compute engine, one process spawn per
// call. Elapsed time is measured by the implementation around the process
// wait using the monotonic clock, not reported by the engine itself.
type EngineRunner interface {
	Run(ctx context.Context, kind domain.WorkloadKind, magnitude int) (domain.EngineResult, error)
}

// CapPrompter asks the user to resolve an over-budget request: accept the
// capped magnitude, re-enter a new one, or cancel.
type CapPrompter interface {
	ChooseCap(kind domain.WorkloadKind, requested, capped int, eta time.Duration) (domain.CapChoice, error)
}

// Console handles line-oriented interaction for the session loop.
type Console interface {
	// ReadLine prompts and reads one line, with trailing newline stripped.
	ReadLine(prompt string) (string, error)
	// Print writes a normal output line.
	Print(msg string)
	// Notice writes a secondary, de-emphasized line.
	Notice(msg string)
	// Result writes a highlighted result block.
	Result(text string)
	// Banner displays the startup banner and top-level menu.
	Banner()
	// Working marks the start of a long engine run; the returned func ends it.
	Working(label string) func()
}

// ResultExporter offers to write a formatted result to disk. It returns
// the written path, or an empty string when the user declines.
type ResultExporter interface {
	Offer(stem, content string) (string, error)
}

// HistoryRepository persists completed run records.
type HistoryRepository interface {
	Save(domain.RunRecord) error
	List(limit int) ([]domain.RunRecord, error)
	Clear() error
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
