package main

import (
	"github.com/aretw0/longboard/internal/cli"
	"github.com/aretw0/longboard/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore a document interactively",
	Long:  `Starts a console reading navigation commands (random, reset, jump, set, drag) from standard input.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, id, err := openDocument(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		if tui.IsTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		console := cli.NewConsole(engine.Manager(), id, cmd.InOrStdin(), cmd.OutOrStdout())
		return cli.HandleExecutionError(console.Run(sigCtx))
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <designspace>",
	Short: "Re-analyse a designspace file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		glyph, _ := cmd.Flags().GetString("glyph")
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.RunWatch(sigCtx, engine, args[0], glyph, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd, watchCmd)
}
