package main

import (
	"context"
	"fmt"

	"github.com/aretw0/longboard/internal/presentation/graph"
	"github.com/aretw0/longboard/internal/presentation/report"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe a document",
	Long: `Prints the axes with their drag roles and preview values, the sources and instances
to jump to, and the preview file name.

With --chart the sources, instances and preview are plotted as a Mermaid quadrant chart
over the horizontal and vertical axes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, _ := cmd.Flags().GetBool("chart")
		jsonOut, _ := cmd.Flags().GetBool("json")

		return withDocument(cmd, false, func(ctx context.Context, c *navigation.Coordinator) error {
			out := cmd.OutOrStdout()
			switch {
			case chart:
				doc := c.Document()
				text, err := graph.GenerateQuadrant(doc.ID(), doc.Axes(), c.Roles(), c.InterestingLocations(),
					&graph.Overlay{Preview: doc.PreviewLocation()})
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, text)
				return err
			case jsonOut:
				return printJSON(out, map[string]any{
					"id":               c.Document().ID(),
					"axes":             c.Document().Axes(),
					"preview":          c.Document().PreviewLocation(),
					"roles":            c.RoleTable(),
					"interesting":      c.InterestingLocations(),
					"preview_filename": c.PreviewFilename(),
				})
			}
			return printMarkdown(out, report.Document(c))
		})
	},
}

// withDocument opens --doc and runs fn under the document lock. With
// mutate the navigation state is saved afterwards.
func withDocument(cmd *cobra.Command, mutate bool, fn func(context.Context, *navigation.Coordinator) error) error {
	engine, id, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	if mutate {
		return engine.Manager().Update(cmd.Context(), id, fn)
	}
	return engine.Manager().View(cmd.Context(), id, fn)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("chart", false, "Print a Mermaid quadrant chart")
	inspectCmd.Flags().Bool("json", false, "Print JSON")
}
