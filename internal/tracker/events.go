package tracker

import "github.com/powerpak/pph2-and-rank/internal/ggi"

// ProgressSink receives the reconstructed, gap-free event stream for one
// tracked job. Each stage is entered exactly once and completed exactly
// once, in pipeline order, even when the remote service advanced past a
// stage entirely between two polls.
type ProgressSink interface {
	StageEntered(stage ggi.Stage)
	// StageProgress reports done out of total for the current stage.
	// Total is pinned to the first queue position observed in the stage.
	StageProgress(stage ggi.Stage, done, total int)
	StageCompleted(stage ggi.Stage)
	// ResultPending is reported while the finished job's result file has
	// not yet been published.
	ResultPending()
}

// NopSink discards all events.
type NopSink struct{}

var _ ProgressSink = NopSink{}

func (NopSink) StageEntered(ggi.Stage)            {}
func (NopSink) StageProgress(ggi.Stage, int, int) {}
func (NopSink) StageCompleted(ggi.Stage)          {}
func (NopSink) ResultPending()                    {}
