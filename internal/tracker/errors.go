package tracker

import (
	"errors"
	"fmt"

	"github.com/powerpak/pph2-and-rank/internal/ggi"
)

var (
	// ErrServiceUnresponsive means the status page stayed in a transient
	// state for the full configured budget of consecutive polls.
	ErrServiceUnresponsive = errors.New("service did not report job status within the retry budget")

	// ErrStageRegression means a poll reported an earlier pipeline stage
	// than previously observed. The protocol guarantees monotonic
	// progress, so this is a malformed response and fatal.
	ErrStageRegression = fmt.Errorf("%w: stage regression", ggi.ErrMalformedResponse)
)
