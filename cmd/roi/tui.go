package main

import (
	"github.com/spf13/cobra"

	"github.com/komsit37/roi/pkg/roi/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive slider calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.cfg.Model, a.cfg.Defaults, a.cfg.AnimateConfig())
		},
	}
}
