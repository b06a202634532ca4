// Package session accumulates the issues of successive validation runs.
package session

import (
	"time"

	"github.com/google/uuid"

	"sheetqa/pkg/contracts/domain"
)

// Run is the issue list produced by one pipeline run, with its provenance
type Run struct {
	ID         string
	SourcePath string
	Sheet      string
	Columns    []domain.ColumnSpec
	Issues     []domain.Issue
	FinishedAt time.Time
}

// Store is an append-only, ordered record of runs for one session. It is
// not safe for concurrent use; independent sessions use independent stores.
type Store struct {
	id   string
	runs []Run
}

// NewStore starts an empty session.
func NewStore() *Store {
	return &Store{id: uuid.New().String()}
}

// ID identifies the session.
func (s *Store) ID() string {
	return s.id
}

// Append records a finished run. The issue slice is copied so later changes
// by the caller do not leak into the session.
func (s *Store) Append(run Run) Run {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	run.Issues = append([]domain.Issue(nil), run.Issues...)
	run.Columns = append([]domain.ColumnSpec(nil), run.Columns...)
	s.runs = append(s.runs, run)
	return run
}

// Runs returns the recorded runs in arrival order.
func (s *Store) Runs() []Run {
	return append([]Run(nil), s.runs...)
}

// Len is the number of recorded runs.
func (s *Store) Len() int {
	return len(s.runs)
}

// Latest returns the most recent run.
func (s *Store) Latest() (Run, bool) {
	if len(s.runs) == 0 {
		return Run{}, false
	}
	return s.runs[len(s.runs)-1], true
}

// Issues concatenates every run's issues in arrival order, without
// deduplication.
func (s *Store) Issues() []domain.Issue {
	var n int
	for _, r := range s.runs {
		n += len(r.Issues)
	}
	out := make([]domain.Issue, 0, n)
	for _, r := range s.runs {
		out = append(out, r.Issues...)
	}
	return out
}
