// Package run contains the orchestration loop: sequential target
// processing, bounded retries, progress events, and the final summary.
package run

import (
	"context"
	"time"

	"github.com/webgrab/webgrab/internal/model"
)

// EventKind identifies a progress event emitted by the orchestrator.
type EventKind int

const (
	EventRunStarted EventKind = iota
	EventTargetStarted
	EventAttemptFinished
	EventTargetFinished
	EventRunFinished
)

// Event is one progress notification. Fields are populated depending on
// Kind; presentation layers render them and hold no business logic.
type Event struct {
	Kind    EventKind
	Time    time.Time
	Target  model.Target
	Index   int // 1-based position of Target in the input list
	Total   int
	Attempt model.Attempt  // EventAttemptFinished
	Result  *model.Result  // EventTargetFinished
	Summary *model.Summary // EventRunFinished
}

// Sink receives progress events. Implementations must not block for long;
// the orchestrator calls them inline.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Fetcher is the browser-facing surface the run layer depends on. The real
// implementation is browser.Session; tests substitute fakes.
type Fetcher interface {
	// Visit navigates to the URL and waits for the page-ready condition.
	Visit(ctx context.Context, url string) error
	// TriggerDownload clicks the first element matching selector and waits
	// for the resulting download to land on disk.
	TriggerDownload(ctx context.Context, selector string) (model.FileInfo, error)
}

// wait sleeps for d unless ctx is cancelled first. Returns false on
// cancellation.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
