package model

import "time"

// RunSummary describes one finished build.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Files   int      // located, before the cap
	Loaded  int      // parsed successfully
	Skipped []string // unreadable files

	Rows         int
	Symbols      int
	Securities   int
	Fundamentals int

	// AdjustedSource is "column", "close_copy" or "missing".
	AdjustedSource string
	AdjustedColumn string
	Enriched       bool

	Outputs []string
}

// Approximate reports whether adjusted_close is not a real adjusted price.
func (s *RunSummary) Approximate() bool {
	return s.AdjustedSource != "column"
}
