package model

import (
	"testing"
	"time"
)

func successResult(url string, attempts int, size int64) Result {
	r := Result{Target: Target(url), Outcome: OutcomeSuccess}
	for i := 1; i <= attempts; i++ {
		a := Attempt{Number: i, Outcome: OutcomeFailure, Error: "navigation timeout"}
		if i == attempts {
			a.Outcome = OutcomeSuccess
			a.Error = ""
			a.File = FileInfo{Name: "report.pdf", Size: size}
		}
		r.Attempts = append(r.Attempts, a)
	}
	return r
}

func failedResult(url string, attempts int, lastErr string) Result {
	r := Result{Target: Target(url), Outcome: OutcomeFailure}
	for i := 1; i <= attempts; i++ {
		r.Attempts = append(r.Attempts, Attempt{Number: i, Outcome: OutcomeFailure, Error: lastErr})
	}
	return r
}

func TestSummaryCounts(t *testing.T) {
	s := NewSummary(3, "/tmp/downloads")

	s.Record(successResult("https://a.example", 1, 100))
	s.Record(failedResult("https://b.example", 3, "button not found"))
	s.Record(successResult("https://c.example", 2, 250))
	s.Finalize()

	if s.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", s.Succeeded)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if s.Processed() != s.Total {
		t.Errorf("Processed() = %d, want %d", s.Processed(), s.Total)
	}
	if s.TotalSize != 350 {
		t.Errorf("TotalSize = %d, want 350", s.TotalSize)
	}
}

func TestSummaryFailedResults(t *testing.T) {
	s := NewSummary(3, "/tmp/downloads")
	s.Record(successResult("https://a.example", 1, 10))
	s.Record(failedResult("https://b.example", 2, "download timeout"))
	s.Record(successResult("https://c.example", 1, 10))

	failed := s.FailedResults()
	if len(failed) != 1 {
		t.Fatalf("FailedResults() len = %d, want 1", len(failed))
	}
	if failed[0].Target != "https://b.example" {
		t.Errorf("failed target = %s, want https://b.example", failed[0].Target)
	}
	if failed[0].LastError() != "download timeout" {
		t.Errorf("LastError() = %q, want %q", failed[0].LastError(), "download timeout")
	}
}

func TestResultLastError(t *testing.T) {
	ok := successResult("https://a.example", 2, 1)
	if ok.LastError() != "" {
		t.Errorf("LastError() on success = %q, want empty", ok.LastError())
	}

	var empty Result
	if empty.LastError() != "" {
		t.Errorf("LastError() on empty result = %q, want empty", empty.LastError())
	}
}

func TestSummaryStoppedRun(t *testing.T) {
	s := NewSummary(5, "/tmp/downloads")
	s.Record(successResult("https://a.example", 1, 10))
	s.Stopped = true
	s.Finalize()

	if s.Processed() != 1 {
		t.Errorf("Processed() = %d, want 1", s.Processed())
	}
	if s.EndTime.IsZero() {
		t.Error("Finalize() should set EndTime")
	}
	if s.Duration() < 0 || s.Duration() > time.Minute {
		t.Errorf("Duration() = %v, implausible", s.Duration())
	}
}
