package ggi

// StatusSnapshot is one observation of the remote job, produced fresh on
// every poll of the status page.
type StatusSnapshot struct {
	// StageIndex is the phase the job is currently in. Only meaningful
	// when neither Finished nor Busy is set.
	StageIndex Stage
	// Position is the job's remaining queue position within the current
	// phase. It counts down towards zero as the phase progresses.
	Position int
	// Finished reports that the pipeline has completed and the result
	// file can be downloaded.
	Finished bool
	// Busy reports a transient condition: the page carried neither a
	// status row nor the completion marker.
	Busy bool
}
