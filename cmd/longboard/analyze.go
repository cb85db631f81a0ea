package main

import (
	"context"
	"errors"

	"github.com/aretw0/longboard/internal/presentation/report"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure the glyph at the preview location",
	Long:  `Generates the --glyph at the preview location and reports its width, margins, area, kinks and beam measurements.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, false, func(ctx context.Context, c *navigation.Coordinator) error {
			if c.Glyph() == "" {
				return errors.New("no glyph: pass --glyph or configure one")
			}
			frame, err := c.Render(ctx)
			if err != nil {
				return err
			}
			return printFrame(cmd, frame)
		})
	},
}

// printFrame writes a frame as a report, or as JSON with --json.
func printFrame(cmd *cobra.Command, frame *ports.Frame) error {
	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(out, frame)
	}
	if frame == nil {
		return nil
	}
	return printMarkdown(out, report.Frame(frame))
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "Print the frame as JSON")
}
