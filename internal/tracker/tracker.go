package tracker

import (
	"context"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"github.com/pkg/errors"
	"github.com/powerpak/pph2-and-rank/internal/client"
	"github.com/powerpak/pph2-and-rank/internal/ggi"
	"go.uber.org/zap"
)

// Tracker drives one remote job from submission to result download. The
// status page only exposes a coarse "current stage + queue position"
// snapshot per refresh; Run reconstructs a monotonic, gap-free event
// sequence from that lossy view.
type Tracker struct {
	client         client.GGI
	log            *zap.SugaredLogger
	interval       time.Duration
	transientLimit int
}

func New(c client.GGI, log *zap.SugaredLogger, interval time.Duration, transientLimit int) *Tracker {
	return &Tracker{
		client:         c,
		log:            log.Named("tracker"),
		interval:       interval,
		transientLimit: transientLimit,
	}
}

// Run polls the status page until the job finishes, emitting progress
// events to sink, then downloads and returns the result file. It blocks
// until the result is available, a fatal protocol error occurs, or the
// context is cancelled.
func (t *Tracker) Run(ctx context.Context, sid string, sink ProgressSink) (string, error) {
	currentStage := ggi.Stage(-1)
	maxPosition := 0
	transientPolls := 0

	ticker := jitterbug.New(t.interval, &jitterbug.Norm{Stdev: t.interval / 100})
	defer ticker.Stop()

	for {
		doc, err := t.client.FetchStatus(ctx, sid)
		if err != nil {
			return "", err
		}
		snapshot, err := ggi.ParseStatus(doc)
		if err != nil {
			return "", err
		}

		switch {
		case snapshot.Finished:
			t.flushRemaining(currentStage, sink)
			return t.awaitResult(ctx, sid, ticker, sink)

		case snapshot.Busy:
			transientPolls++
			t.log.Debugf("status page busy (%d/%d)", transientPolls, t.transientLimit)
			if transientPolls >= t.transientLimit {
				return "", ErrServiceUnresponsive
			}

		case snapshot.StageIndex < currentStage:
			return "", errors.Wrapf(ErrStageRegression, "stage %d reported after stage %d", snapshot.StageIndex, currentStage)

		case snapshot.StageIndex > currentStage:
			// The service may have finished several stages between two
			// refreshes; report them so the stream stays gap-free.
			if currentStage >= 0 {
				sink.StageCompleted(currentStage)
			}
			for s := currentStage + 1; s < snapshot.StageIndex; s++ {
				sink.StageEntered(s)
				sink.StageCompleted(s)
			}
			currentStage = snapshot.StageIndex
			maxPosition = snapshot.Position
			sink.StageEntered(currentStage)
			sink.StageProgress(currentStage, maxPosition-snapshot.Position, maxPosition)
			transientPolls = 0

		default: // same stage
			sink.StageProgress(currentStage, maxPosition-snapshot.Position, maxPosition)
			transientPolls = 0
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// flushRemaining reports every stage not yet completed once the status
// page says the job is done. A job may finish before the first stage was
// ever observed.
func (t *Tracker) flushRemaining(currentStage ggi.Stage, sink ProgressSink) {
	next := ggi.Stage(0)
	if currentStage >= 0 {
		sink.StageCompleted(currentStage)
		next = currentStage + 1
	}
	for s := next; s < ggi.StageCount; s++ {
		sink.StageEntered(s)
		sink.StageCompleted(s)
	}
}

// awaitResult downloads the result file, waiting out the window between
// the job finishing and the file being published.
func (t *Tracker) awaitResult(ctx context.Context, sid string, ticker *jitterbug.Ticker, sink ProgressSink) (string, error) {
	for {
		result, err := t.client.FetchResult(ctx, sid)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, client.ErrResultNotReady) {
			return "", err
		}
		sink.ResultPending()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
