package domain

import "time"

// RunRecord is one completed engine run in the history log.
type RunRecord struct {
	ID         string
	Timestamp  time.Time
	Kind       WorkloadKind
	Magnitude  int
	Capped     bool
	ElapsedMS  int64
	Rate       float64
	ExportedTo string
}
