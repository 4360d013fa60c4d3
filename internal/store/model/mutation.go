package model

// Mutation is one staged row of the PolyPhen-2 result file. Gene and
// SeqLen stay NULL until enrichment resolves them; numeric result
// fields that failed to parse stay NULL and are excluded from ranking.
type Mutation struct {
	ID        uint     `gorm:"column:id;primaryKey;autoIncrement"`
	Gene      *string  `gorm:"column:gene"`
	Accession string   `gorm:"column:accid"`
	SeqLen    *int     `gorm:"column:seqlen"`
	SeqPos    *int     `gorm:"column:seqpos"`
	AA1       string   `gorm:"column:aa1"`
	AA2       string   `gorm:"column:aa2"`
	Score     *float64 `gorm:"column:pph2_score"`
}

func (Mutation) TableName() string {
	return "mutations"
}

// GeneScore is one row of the ranked report: the per-gene deleteriousness
// aggregate, normalized by protein length.
type GeneScore struct {
	Gene  string  `gorm:"column:gene"`
	Score float64 `gorm:"column:score"`
}
