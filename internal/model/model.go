// Package model defines the data types shared by the run orchestrator and
// both presentation layers.
package model

import "time"

// Target is a single URL to be processed for download. Immutable once read
// from input.
type Target string

// Outcome classifies a finished attempt or target.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// FileInfo describes a file that landed in the downloads directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Attempt records one navigation-plus-click cycle for a Target.
type Attempt struct {
	Number    int // 1-based
	Outcome   Outcome
	Error     string // empty on success
	File      FileInfo
	StartedAt time.Time
}

// Result is the complete outcome history of one Target.
type Result struct {
	Target   Target
	Attempts []Attempt
	Outcome  Outcome
}

// LastError returns the error text of the final attempt, or "" if the target
// succeeded.
func (r *Result) LastError() string {
	if r.Outcome == OutcomeSuccess || len(r.Attempts) == 0 {
		return ""
	}
	return r.Attempts[len(r.Attempts)-1].Error
}

// Succeeded reports whether any attempt produced a download.
func (r *Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Summary aggregates the outcomes of a whole run. It is built incrementally
// by the orchestrator and finalized when the target list is exhausted or the
// run is stopped.
type Summary struct {
	StartTime   time.Time
	EndTime     time.Time
	Total       int // targets in the input list
	Succeeded   int
	Failed      int
	Stopped     bool // true if the run ended by user request
	TotalSize   int64
	DownloadDir string
	Results     []Result
}

// NewSummary creates a Summary for a run over total targets, with StartTime
// set to now.
func NewSummary(total int, downloadDir string) *Summary {
	return &Summary{
		StartTime:   time.Now(),
		Total:       total,
		DownloadDir: downloadDir,
		Results:     make([]Result, 0, total),
	}
}

// Record appends a finished target result and updates the counters.
func (s *Summary) Record(res Result) {
	s.Results = append(s.Results, res)
	if res.Succeeded() {
		s.Succeeded++
		for _, a := range res.Attempts {
			s.TotalSize += a.File.Size
		}
	} else {
		s.Failed++
	}
}

// Finalize sets the end time. Call once, after the last target.
func (s *Summary) Finalize() {
	s.EndTime = time.Now()
}

// Processed returns how many targets were actually attempted. Equals Total
// unless the run was stopped early.
func (s *Summary) Processed() int {
	return s.Succeeded + s.Failed
}

// FailedResults returns the results of all failed targets, in input order.
func (s *Summary) FailedResults() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Duration returns the wall-clock duration of the run.
func (s *Summary) Duration() time.Duration {
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartTime)
}
