package enrich

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strconv"

	"github.com/powerpak/pph2-and-rank/internal/client"
	"github.com/powerpak/pph2-and-rank/internal/store"
	"go.uber.org/zap"
)

var (
	seqlenRe = regexp.MustCompile(`^SQ\s+SEQUENCE\s+(\d+)\s*AA;`)
	geneRe   = regexp.MustCompile(`^GN   Name=([^;]+);`)
)

// Metadata is what a UniProt record resolves to. Either field may stay
// nil when the record does not carry it; unknown is a valid outcome.
type Metadata struct {
	SeqLen *int
	Gene   *string
}

// ProgressSink reports enrichment progress, one tick per staged
// accession resolved.
type ProgressSink interface {
	MetadataProgress(done, total int)
}

// Enricher resolves sequence length and gene symbol for every distinct
// accession among the staged rows. Lookups are memoized so each
// accession goes out on the wire at most once per run.
type Enricher struct {
	uniprot client.UniProt
	log     *zap.SugaredLogger
	memo    map[string]Metadata
}

func New(uniprot client.UniProt, log *zap.SugaredLogger) *Enricher {
	return &Enricher{
		uniprot: uniprot,
		log:     log.Named("enrich"),
		memo:    map[string]Metadata{},
	}
}

// Run looks up metadata for every scored accession in the staging store
// and writes what it finds back to the staged rows.
func (e *Enricher) Run(ctx context.Context, mutations store.Mutation, sink ProgressSink) error {
	accessions, err := mutations.ScoredAccessions(ctx)
	if err != nil {
		return err
	}

	for i, accession := range accessions {
		meta, err := e.lookup(ctx, accession)
		if err != nil {
			return err
		}
		if err := mutations.SetMetadata(ctx, accession, meta.SeqLen, meta.Gene); err != nil {
			return err
		}
		sink.MetadataProgress(i+1, len(accessions))
	}
	return nil
}

func (e *Enricher) lookup(ctx context.Context, accession string) (Metadata, error) {
	if meta, ok := e.memo[accession]; ok {
		return meta, nil
	}

	record, err := e.uniprot.FetchRecord(ctx, accession)
	if err != nil {
		return Metadata{}, err
	}

	meta := parseRecord(record)
	if meta.SeqLen == nil && meta.Gene == nil {
		e.log.Debugf("record for %s carries neither sequence length nor gene name", accession)
	}
	e.memo[accession] = meta
	return meta, nil
}

// parseRecord scans a UniProt flat-text record for the sequence-length
// and gene-name lines, stopping once both are found.
func parseRecord(record []byte) Metadata {
	var meta Metadata
	scanner := bufio.NewScanner(bytes.NewReader(record))
	for scanner.Scan() {
		line := scanner.Text()
		if meta.SeqLen == nil {
			if m := seqlenRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					meta.SeqLen = &v
				}
			}
		}
		if meta.Gene == nil {
			if m := geneRe.FindStringSubmatch(line); m != nil {
				gene := m[1]
				meta.Gene = &gene
			}
		}
		if meta.SeqLen != nil && meta.Gene != nil {
			break
		}
	}
	return meta
}
