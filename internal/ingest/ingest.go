package ingest

import (
	"context"
	"strconv"
	"strings"

	"github.com/powerpak/pph2-and-rank/internal/store"
	"github.com/powerpak/pph2-and-rank/internal/store/model"
	"go.uber.org/zap"
)

// minFields is the arity below which a result line is treated as a
// non-data row (trailing blank, comment) and skipped.
const minFields = 17

// Result file column indexes of the fields we stage.
const (
	fieldAccession = 6
	fieldSeqPos    = 7
	fieldAA1       = 8
	fieldAA2       = 9
	fieldScore     = 16
)

// Stage parses the tab-delimited result file and stages one mutation row
// per data line. The first line is the header. Fields are trimmed;
// numeric fields that fail to parse are staged as NULL so they fall out
// of the ranking instead of aborting the run.
func Stage(ctx context.Context, mutations store.Mutation, resultFile string, log *zap.SugaredLogger) error {
	lines := strings.Split(resultFile, "\n")
	staged := 0
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		row := &model.Mutation{
			Accession: fields[fieldAccession],
			SeqPos:    parseInt(fields[fieldSeqPos]),
			AA1:       fields[fieldAA1],
			AA2:       fields[fieldAA2],
			Score:     parseFloat(fields[fieldScore]),
		}
		if err := mutations.Create(ctx, row); err != nil {
			return err
		}
		staged++
	}
	log.Debugf("staged %d mutations from %d result lines", staged, len(lines)-1)
	return nil
}

func parseInt(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
