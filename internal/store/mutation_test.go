package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/powerpak/pph2-and-rank/internal/config"
	"github.com/powerpak/pph2-and-rank/internal/store"
	"github.com/powerpak/pph2-and-rank/internal/store/model"
)

func intPtr(v int) *int             { return &v }
func strPtr(v string) *string       { return &v }
func floatPtr(v float64) *float64   { return &v }

func stageRow(s store.Store, accession string, score *float64) {
	err := s.Mutation().Create(context.TODO(), &model.Mutation{
		Accession: accession,
		SeqPos:    intPtr(1),
		AA1:       "A",
		AA2:       "V",
		Score:     score,
	})
	Expect(err).To(BeNil())
}

var _ = Describe("mutation store", Ordered, func() {
	var s store.Store

	BeforeEach(func() {
		cfg, err := config.New()
		Expect(err).To(BeNil())
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		s = store.NewStore(db)
	})

	AfterEach(func() {
		Expect(s.Close()).To(BeNil())
	})

	Context("staging", func() {
		It("lists distinct scored accessions in first-seen order", func() {
			stageRow(s, "P00002", floatPtr(0.5))
			stageRow(s, "P00001", floatPtr(0.6))
			stageRow(s, "P00002", floatPtr(0.7))
			stageRow(s, "P00003", nil) // unscored, excluded

			accessions, err := s.Mutation().ScoredAccessions(context.TODO())
			Expect(err).To(BeNil())
			Expect(accessions).To(Equal([]string{"P00002", "P00001"}))
		})

		It("counts scored rows", func() {
			stageRow(s, "P00001", floatPtr(0.5))
			stageRow(s, "P00001", nil)

			count, err := s.Mutation().CountScored(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Context("metadata", func() {
		It("propagates to every row sharing the accession", func() {
			stageRow(s, "P38398", floatPtr(0.9))
			stageRow(s, "P38398", floatPtr(0.8))

			err := s.Mutation().SetMetadata(context.TODO(), "P38398", intPtr(1863), strPtr("BRCA1"))
			Expect(err).To(BeNil())

			scores, err := s.Mutation().Rank(context.TODO())
			Expect(err).To(BeNil())
			Expect(scores).To(HaveLen(1))
			Expect(scores[0].Gene).To(Equal("BRCA1"))
		})

		It("returns not-found for an unknown accession", func() {
			err := s.Mutation().SetMetadata(context.TODO(), "Q99999", intPtr(100), strPtr("NOPE"))
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("ranking", func() {
		It("normalizes the per-gene sum by sequence length", func() {
			stageRow(s, "P38398", floatPtr(0.9))
			stageRow(s, "P38398", floatPtr(0.8))
			Expect(s.Mutation().SetMetadata(context.TODO(), "P38398", intPtr(1863), strPtr("BRCA1"))).To(BeNil())

			scores, err := s.Mutation().Rank(context.TODO())
			Expect(err).To(BeNil())
			Expect(scores).To(HaveLen(1))
			// (0.9 + 0.8) / 1863 * 1000
			Expect(scores[0].Score).To(BeNumerically("~", 0.9125, 0.0005))
		})

		It("orders genes by score descending", func() {
			stageRow(s, "P38398", floatPtr(0.9))
			stageRow(s, "P38398", floatPtr(0.8))
			Expect(s.Mutation().SetMetadata(context.TODO(), "P38398", intPtr(1863), strPtr("BRCA1"))).To(BeNil())

			stageRow(s, "P04637", floatPtr(0.99))
			Expect(s.Mutation().SetMetadata(context.TODO(), "P04637", intPtr(393), strPtr("TP53"))).To(BeNil())

			scores, err := s.Mutation().Rank(context.TODO())
			Expect(err).To(BeNil())
			Expect(scores).To(HaveLen(2))
			Expect(scores[0].Gene).To(Equal("TP53"))
			Expect(scores[1].Gene).To(Equal("BRCA1"))
			Expect(scores[0].Score).To(BeNumerically(">", scores[1].Score))
		})

		It("excludes genes whose sequence length never resolved", func() {
			stageRow(s, "P38398", floatPtr(0.9))
			Expect(s.Mutation().SetMetadata(context.TODO(), "P38398", intPtr(1863), strPtr("BRCA1"))).To(BeNil())

			stageRow(s, "Q00001", floatPtr(0.7))
			Expect(s.Mutation().SetMetadata(context.TODO(), "Q00001", nil, strPtr("GHOST"))).To(BeNil())

			scores, err := s.Mutation().Rank(context.TODO())
			Expect(err).To(BeNil())
			Expect(scores).To(HaveLen(1))
			Expect(scores[0].Gene).To(Equal("BRCA1"))
		})

		It("excludes unscored rows from the aggregate", func() {
			stageRow(s, "P38398", floatPtr(0.9))
			stageRow(s, "P38398", nil)
			Expect(s.Mutation().SetMetadata(context.TODO(), "P38398", intPtr(1863), strPtr("BRCA1"))).To(BeNil())

			scores, err := s.Mutation().Rank(context.TODO())
			Expect(err).To(BeNil())
			Expect(scores).To(HaveLen(1))
			// 0.9 / 1863 * 1000, the NULL row contributes nothing
			Expect(scores[0].Score).To(BeNumerically("~", 0.4831, 0.0005))
		})
	})
})
