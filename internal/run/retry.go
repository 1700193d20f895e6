package run

import (
	"context"
	"time"

	"github.com/webgrab/webgrab/internal/model"
)

// Retrier wraps visit-plus-trigger in a bounded retry loop. Each target gets
// up to MaxAttempts attempts with a fixed Delay between them; the first
// success wins, the last failure is reported on exhaustion.
type Retrier struct {
	Fetcher     Fetcher
	Selector    string
	MaxAttempts int
	Delay       time.Duration

	// Fatal classifies errors that make further attempts pointless, such as
	// a closed browser session. Nil means every failure is retryable.
	Fatal func(error) bool
}

// Process runs the attempt loop for one target. The first attempt always
// runs; cancellation is honoured between attempts, never mid-attempt. notify
// is called after every attempt, success or failure.
func (r *Retrier) Process(ctx context.Context, target model.Target, notify func(model.Attempt)) model.Result {
	res := model.Result{Target: target, Outcome: model.OutcomeFailure}

	for n := 1; n <= r.MaxAttempts; n++ {
		att, err := r.attempt(ctx, target, n)
		res.Attempts = append(res.Attempts, att)
		if notify != nil {
			notify(att)
		}

		if att.Outcome == model.OutcomeSuccess {
			res.Outcome = model.OutcomeSuccess
			return res
		}
		if r.Fatal != nil && r.Fatal(err) {
			return res
		}
		if n < r.MaxAttempts {
			if !wait(ctx, r.Delay) {
				return res // stopped between attempts
			}
		}
	}
	return res
}

func (r *Retrier) attempt(ctx context.Context, target model.Target, number int) (model.Attempt, error) {
	att := model.Attempt{
		Number:    number,
		StartedAt: time.Now(),
	}

	if err := r.Fetcher.Visit(ctx, string(target)); err != nil {
		att.Outcome = model.OutcomeFailure
		att.Error = err.Error()
		return att, err
	}

	file, err := r.Fetcher.TriggerDownload(ctx, r.Selector)
	if err != nil {
		att.Outcome = model.OutcomeFailure
		att.Error = err.Error()
		return att, err
	}

	att.Outcome = model.OutcomeSuccess
	att.File = file
	return att, nil
}
