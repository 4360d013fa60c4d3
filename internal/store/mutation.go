package store

import (
	"context"
	"fmt"

	"github.com/powerpak/pph2-and-rank/internal/store/model"
	"gorm.io/gorm"
)

// Mutation is the interface for staging-table operations.
type Mutation interface {
	Create(ctx context.Context, mutation *model.Mutation) error
	// ScoredAccessions lists the distinct accessions among rows that
	// carry a score, in first-seen order.
	ScoredAccessions(ctx context.Context) ([]string, error)
	// SetMetadata writes the resolved sequence length and gene symbol to
	// every row staged under the accession. Either value may be nil.
	SetMetadata(ctx context.Context, accession string, seqlen *int, gene *string) error
	CountScored(ctx context.Context) (int64, error)
	// Rank aggregates fully resolved rows into the per-gene report,
	// ordered by score descending.
	Rank(ctx context.Context) ([]model.GeneScore, error)
}

type MutationStore struct {
	db *gorm.DB
}

var _ Mutation = (*MutationStore)(nil)

func NewMutationStore(db *gorm.DB) Mutation {
	return &MutationStore{db: db}
}

func (s *MutationStore) Create(ctx context.Context, mutation *model.Mutation) error {
	if result := s.db.WithContext(ctx).Create(mutation); result.Error != nil {
		return fmt.Errorf("staging mutation: %w", result.Error)
	}
	return nil
}

func (s *MutationStore) ScoredAccessions(ctx context.Context) ([]string, error) {
	var accessions []string
	result := s.db.WithContext(ctx).Raw(`
		SELECT accid
		FROM mutations
		WHERE pph2_score IS NOT NULL
		GROUP BY accid
		ORDER BY MIN(id) ASC`).
		Scan(&accessions)
	if result.Error != nil {
		return nil, fmt.Errorf("listing accessions: %w", result.Error)
	}
	return accessions, nil
}

func (s *MutationStore) SetMetadata(ctx context.Context, accession string, seqlen *int, gene *string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Mutation{}).
		Where("accid = ?", accession).
		Updates(map[string]interface{}{"seqlen": seqlen, "gene": gene})
	if result.Error != nil {
		return fmt.Errorf("updating metadata for %s: %w", accession, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MutationStore) CountScored(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Mutation{}).
		Where("pph2_score IS NOT NULL").
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("counting scored rows: %w", result.Error)
	}
	return count, nil
}

func (s *MutationStore) Rank(ctx context.Context) ([]model.GeneScore, error) {
	var scores []model.GeneScore
	result := s.db.WithContext(ctx).Raw(`
		SELECT gene, (SUM(pph2_score) / seqlen * 1000) AS score
		FROM mutations
		WHERE pph2_score IS NOT NULL AND gene IS NOT NULL AND seqlen IS NOT NULL
		GROUP BY gene
		ORDER BY score DESC, gene ASC`).
		Scan(&scores)
	if result.Error != nil {
		return nil, fmt.Errorf("ranking genes: %w", result.Error)
	}
	return scores, nil
}
