package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/powerpak/pph2-and-rank/internal/client"
	"github.com/powerpak/pph2-and-rank/internal/config"
	"github.com/powerpak/pph2-and-rank/internal/enrich"
	"github.com/powerpak/pph2-and-rank/internal/ingest"
	"github.com/powerpak/pph2-and-rank/internal/report"
	"github.com/powerpak/pph2-and-rank/internal/store"
	"github.com/powerpak/pph2-and-rank/internal/tracker"
	"github.com/powerpak/pph2-and-rank/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

const (
	tsvFormat  = "tsv"
	xlsxFormat = "xlsx"
)

var (
	legalOutputFormats = []string{tsvFormat, xlsxFormat}
	legalModels        = []string{"HumVar", "HumDiv"}
	legalGenomeBuilds  = []string{"hg18", "hg19"}
)

type RankOptions struct {
	SID         string
	Output      string
	Format      string
	Model       string
	GenomeBuild string
	Quiet       bool
}

func DefaultRankOptions() *RankOptions {
	return &RankOptions{
		Format:      tsvFormat,
		Model:       "HumVar",
		GenomeBuild: "hg18",
	}
}

func NewCmdRank() *cobra.Command {
	o := DefaultRankOptions()
	cmd := &cobra.Command{
		Use:   "rank [flags] MUT_LIST [MUT_LIST...]",
		Short: "Submit mutation lists to PolyPhen-2 and rank genes by deleteriousness.",
		Long: `Submits a batch of protein mutations to the PolyPhen-2 GGI pipeline,
waits for the job to finish, and prints genes ranked by the sum of their
mutations' deleteriousness scores normalized by protein length.

Each MUT_LIST is a file of accession + substitution lines; "-" reads
standard input. With --sid a previous job is resumed and no new batch is
submitted.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *RankOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.SID, "sid", "s", o.SID, "Resume a pre-existing GGI job by its SID instead of submitting.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the report to a file instead of standard output.")
	fs.StringVar(&o.Format, "format", o.Format, fmt.Sprintf("Report format. One of: (%s).", strings.Join(legalOutputFormats, ", ")))
	fs.StringVar(&o.Model, "model", o.Model, fmt.Sprintf("Classifier model. One of: (%s).", strings.Join(legalModels, ", ")))
	fs.StringVar(&o.GenomeBuild, "genome", o.GenomeBuild, fmt.Sprintf("UCSC genome build. One of: (%s).", strings.Join(legalGenomeBuilds, ", ")))
	fs.BoolVarP(&o.Quiet, "quiet", "q", o.Quiet, "Do not print status messages to standard error.")
}

func (o *RankOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *RankOptions) Validate(args []string) error {
	if len(args) == 0 && o.SID == "" {
		return fmt.Errorf("no mutation lists given and no --sid to resume from")
	}
	if !funk.ContainsString(legalOutputFormats, o.Format) {
		return fmt.Errorf("format must be one of %s", strings.Join(legalOutputFormats, ", "))
	}
	if !funk.ContainsString(legalModels, o.Model) {
		return fmt.Errorf("model must be one of %s", strings.Join(legalModels, ", "))
	}
	if !funk.ContainsString(legalGenomeBuilds, o.GenomeBuild) {
		return fmt.Errorf("genome must be one of %s", strings.Join(legalGenomeBuilds, ", "))
	}
	return nil
}

func (o *RankOptions) Run(ctx context.Context, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger := log.InitLog(logLvl)
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()
	l := logger.Sugar()

	batch, err := readMutationLists(args, os.Stdin)
	if err != nil {
		return err
	}

	db, err := store.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("initializing staging store: %w", err)
	}
	s := store.NewStore(db)
	defer s.Close()

	var out io.Writer = os.Stdout
	if o.Output != "" {
		f, err := os.Create(o.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	sink := &consoleSink{w: os.Stderr, quiet: o.Quiet}
	ggiClient := client.NewGGI(cfg, l)
	uniprotClient := client.NewUniProt(cfg, l)
	jobTracker := tracker.New(ggiClient, l, cfg.Service.PollInterval, cfg.Service.TransientPollLimit)

	return o.execute(ctx, batch, s, ggiClient, uniprotClient, jobTracker, sink, out, l)
}

// execute runs the pipeline against already-built collaborators: submit
// (unless resuming), track until terminal, stage the result file, enrich
// with UniProt metadata, rank and write the report.
func (o *RankOptions) execute(
	ctx context.Context,
	batch string,
	s store.Store,
	ggiClient client.GGI,
	uniprotClient client.UniProt,
	jobTracker *tracker.Tracker,
	sink *consoleSink,
	out io.Writer,
	l *zap.SugaredLogger,
) error {
	l.Debugw("starting run", "run_id", uuid.NewString(), "resume", o.SID != "")

	sid := o.SID
	if sid == "" {
		var err error
		sid, err = ggiClient.Submit(ctx, batch, client.SubmitOptions{Model: o.Model, GenomeBuild: o.GenomeBuild})
		if err != nil {
			return fmt.Errorf("submitting batch: %w", err)
		}
		sink.Submitted(sid, ggiClient.TrackURL(sid))
	}

	resultFile, err := jobTracker.Run(ctx, sid, sink)
	if err != nil {
		return err
	}

	if err := ingest.Stage(ctx, s.Mutation(), resultFile, l); err != nil {
		return err
	}

	enricher := enrich.New(uniprotClient, l)
	if err := enricher.Run(ctx, s.Mutation(), sink); err != nil {
		return err
	}

	scores, err := s.Mutation().Rank(ctx)
	if err != nil {
		return err
	}

	if o.Format == xlsxFormat {
		return report.WriteXLSX(out, scores)
	}
	return report.WriteTSV(out, scores)
}
