package run

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/webgrab/webgrab/internal/browser"
	"github.com/webgrab/webgrab/internal/config"
	"github.com/webgrab/webgrab/internal/model"
)

// Orchestrator iterates the target list strictly in input order, one target
// at a time, delegating each to the retry loop and accumulating the summary.
// Individual failures never abort the run.
type Orchestrator struct {
	cfg     *config.Config
	fetcher Fetcher
	sink    Sink
	log     *zap.Logger
}

// New creates an orchestrator. sink may be nil if no presentation layer is
// attached; log may be nil.
func New(cfg *config.Config, fetcher Fetcher, sink Sink, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, fetcher: fetcher, sink: sink, log: log}
}

// Run processes every target and returns the summary. Cancelling ctx is the
// cooperative stop: it takes effect between attempts and between targets,
// never mid-click, and the summary then covers only the processed targets.
func (o *Orchestrator) Run(ctx context.Context, targets []model.Target) *model.Summary {
	summary := model.NewSummary(len(targets), o.cfg.DownloadDir)
	o.emit(Event{Kind: EventRunStarted, Total: len(targets), Summary: summary})
	o.log.Info("run started",
		zap.Int("targets", len(targets)),
		zap.String("selector", o.cfg.Selector),
		zap.String("download_dir", o.cfg.DownloadDir))

	retrier := &Retrier{
		Fetcher:     o.fetcher,
		Selector:    o.cfg.Selector,
		MaxAttempts: o.cfg.MaxAttempts(),
		Delay:       o.cfg.Delay(),
		Fatal:       browser.IsSessionClosed,
	}

	for i, target := range targets {
		if ctx.Err() != nil {
			summary.Stopped = true
			o.log.Warn("run stopped by user", zap.Int("processed", summary.Processed()))
			break
		}

		o.emit(Event{Kind: EventTargetStarted, Target: target, Index: i + 1, Total: len(targets)})

		res := retrier.Process(ctx, target, func(att model.Attempt) {
			o.emit(Event{Kind: EventAttemptFinished, Target: target, Index: i + 1, Total: len(targets), Attempt: att})
		})
		summary.Record(res)
		o.emit(Event{Kind: EventTargetFinished, Target: target, Index: i + 1, Total: len(targets), Result: &res})

		if res.Succeeded() {
			o.log.Info("target succeeded", zap.String("url", string(target)),
				zap.Int("attempts", len(res.Attempts)))
		} else {
			o.log.Warn("target failed", zap.String("url", string(target)),
				zap.Int("attempts", len(res.Attempts)), zap.String("error", res.LastError()))
		}

		if ctx.Err() != nil {
			summary.Stopped = true
			break
		}
		// Pace between targets; skipped after the last one.
		if i < len(targets)-1 {
			if !wait(ctx, o.cfg.Delay()) {
				summary.Stopped = true
				break
			}
		}
	}

	summary.Finalize()
	o.emit(Event{Kind: EventRunFinished, Total: len(targets), Summary: summary})
	o.log.Info("run finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Bool("stopped", summary.Stopped),
		zap.Duration("elapsed", summary.Duration()))
	return summary
}

func (o *Orchestrator) emit(e Event) {
	if o.sink == nil {
		return
	}
	e.Time = time.Now()
	o.sink.Publish(e)
}
