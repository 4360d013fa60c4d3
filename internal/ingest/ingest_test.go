package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/powerpak/pph2-and-rank/internal/ingest"
	"github.com/powerpak/pph2-and-rank/internal/store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMutations struct {
	rows []*model.Mutation
}

func (f *fakeMutations) Create(_ context.Context, m *model.Mutation) error {
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMutations) ScoredAccessions(context.Context) ([]string, error) { return nil, nil }
func (f *fakeMutations) SetMetadata(context.Context, string, *int, *string) error {
	return nil
}
func (f *fakeMutations) CountScored(context.Context) (int64, error)      { return 0, nil }
func (f *fakeMutations) Rank(context.Context) ([]model.GeneScore, error) { return nil, nil }

// resultLine builds a tab-delimited line with the given total arity,
// placing the documented values at field indexes 6-9 and 16.
func resultLine(arity int, accession, seqpos, aa1, aa2, score string) string {
	fields := make([]string, arity)
	for i := range fields {
		fields[i] = "x"
	}
	if arity > 6 {
		fields[6] = accession
	}
	if arity > 7 {
		fields[7] = seqpos
	}
	if arity > 8 {
		fields[8] = aa1
	}
	if arity > 9 {
		fields[9] = aa2
	}
	if arity > 16 {
		fields[16] = score
	}
	return strings.Join(fields, "\t")
}

func TestStageExtractsDocumentedFields(t *testing.T) {
	f := &fakeMutations{}
	file := "header\n" + resultLine(17, " P12345 ", "42", " A", "V ", "0.95") + "\n"

	require.NoError(t, ingest.Stage(context.Background(), f, file, zap.NewNop().Sugar()))
	require.Len(t, f.rows, 1)

	row := f.rows[0]
	assert.Equal(t, "P12345", row.Accession)
	require.NotNil(t, row.SeqPos)
	assert.Equal(t, 42, *row.SeqPos)
	assert.Equal(t, "A", row.AA1)
	assert.Equal(t, "V", row.AA2)
	require.NotNil(t, row.Score)
	assert.InDelta(t, 0.95, *row.Score, 1e-9)
	assert.Nil(t, row.Gene)
	assert.Nil(t, row.SeqLen)
}

func TestStageSkipsShortLines(t *testing.T) {
	f := &fakeMutations{}
	file := strings.Join([]string{
		"header",
		resultLine(16, "P00001", "1", "A", "V", ""), // one field short of a data row
		resultLine(17, "P00002", "2", "G", "R", "0.5"),
		"",
		"# trailing comment",
	}, "\n")

	require.NoError(t, ingest.Stage(context.Background(), f, file, zap.NewNop().Sugar()))
	require.Len(t, f.rows, 1)
	assert.Equal(t, "P00002", f.rows[0].Accession)
}

func TestStageKeepsUnparseableNumericsAsNull(t *testing.T) {
	f := &fakeMutations{}
	file := "header\n" + resultLine(17, "P00003", "?", "A", "V", "n/a") + "\n"

	require.NoError(t, ingest.Stage(context.Background(), f, file, zap.NewNop().Sugar()))
	require.Len(t, f.rows, 1)
	assert.Nil(t, f.rows[0].SeqPos)
	assert.Nil(t, f.rows[0].Score)
}

func TestStageHeaderOnly(t *testing.T) {
	f := &fakeMutations{}
	require.NoError(t, ingest.Stage(context.Background(), f, "header only\n", zap.NewNop().Sugar()))
	assert.Empty(t, f.rows)
}
