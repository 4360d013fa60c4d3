package cli

import (
	"fmt"
	"io"

	"github.com/powerpak/pph2-and-rank/internal/ggi"
)

// consoleSink renders progress events as plain status lines on stderr.
// It implements both the tracker's and the enricher's sink interfaces.
// With quiet set it swallows everything.
type consoleSink struct {
	w     io.Writer
	quiet bool
}

func (s *consoleSink) Submitted(sid, trackURL string) {
	s.printf("Received SID for GGI => %s\n", sid)
	s.printf("Track this job at: %s\n", trackURL)
}

func (s *consoleSink) StageEntered(stage ggi.Stage) {
	s.printf("Waiting for PolyPhen2 results => %s\n", stage.Label())
}

func (s *consoleSink) StageProgress(stage ggi.Stage, done, total int) {
	s.printf("Waiting for PolyPhen2 results => %s [%d/%d]\n", stage.Label(), done, total)
}

func (s *consoleSink) StageCompleted(stage ggi.Stage) {
	s.printf("Waiting for PolyPhen2 results => %s => Done.\n", stage.Label())
}

func (s *consoleSink) ResultPending() {
	s.printf("Waiting for PolyPhen2 results => Waiting for download\n")
}

func (s *consoleSink) MetadataProgress(done, total int) {
	s.printf("Fetching gene names & protein lengths from UniProtKB [%d/%d]\n", done, total)
}

func (s *consoleSink) printf(format string, args ...interface{}) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.w, format, args...)
}
