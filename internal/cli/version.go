package cli

import (
	"context"
	"fmt"

	"github.com/powerpak/pph2-and-rank/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct{}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print pph2rank version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	fmt.Printf("pph2rank version: %s\n", version.Get().String())
	return nil
}
