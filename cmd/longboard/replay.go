package main

import (
	"fmt"

	"github.com/aretw0/longboard/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a recorded drag",
	Long: `Feeds the pointer samples of a drag script through the engine, as if the designer
had dragged over the glyph, and prints the last frame. The document and glyph come
from the script unless --doc and --glyph are given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := cli.LoadScript(args[0])
		if err != nil {
			return err
		}
		if ref, _ := cmd.Flags().GetString("doc"); ref == "" && script.Document != "" {
			_ = cmd.Flags().Set("doc", script.Document)
		}
		if glyph, _ := cmd.Flags().GetString("glyph"); glyph != "" {
			script.Glyph = glyph
		}

		engine, id, err := openDocument(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		res, err := cli.Replay(cmd.Context(), engine.Manager(), id, script)
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return printJSON(cmd.OutOrStdout(), res)
		}
		verb := "Cancelled"
		if res.Committed {
			verb = "Committed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s after %d samples at %s\n", verb, res.Applied, res.Location)
		return printFrame(cmd, res.Frame)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("json", false, "Print the result as JSON")
}
