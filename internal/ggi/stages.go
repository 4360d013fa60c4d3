package ggi

// Stage is an index into the fixed sequence of pipeline phases the GGI
// status page reports progress through.
type Stage int

// StageCount is the number of phases in the remote pipeline.
const StageCount = 7

var stageLabels = [StageCount]string{
	"(1/7) Validating input",
	"(2/7) Mapping genomic SNPs",
	"(3/7) Collecting output",
	"(4/7) Building MSA and annotating proteins",
	"(5/7) Collecting output",
	"(6/7) Predicting",
	"(7/7) Generating reports",
}

// Label returns the human-readable phase label exactly as the status
// page renders it.
func (s Stage) Label() string {
	if s < 0 || int(s) >= StageCount {
		return "unknown"
	}
	return stageLabels[s]
}

// StageFromLabel resolves a status-cell label back to its stage index.
// Labels must match exactly; the "(n/7)" prefix disambiguates phases
// that share a description.
func StageFromLabel(label string) (Stage, bool) {
	for i, l := range stageLabels {
		if l == label {
			return Stage(i), true
		}
	}
	return -1, false
}
