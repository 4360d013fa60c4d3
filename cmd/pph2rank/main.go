package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/powerpak/pph2-and-rank/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	command := NewPPH2RankCommand()
	if err := command.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func NewPPH2RankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pph2rank [flags] [options]",
		Short: "pph2rank ranks genes by the predicted deleteriousness of their mutations.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdRank())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
