package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Move the preview location",
	Long:  `Explicit navigation. Every subcommand saves the new preview location and prints the frame when a glyph is set.`,
}

var previewResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Move continuous axes to their defaults",
	Args:  cobra.NoArgs,
	RunE: previewAction(func(ctx context.Context, c *navigation.Coordinator, _ *cobra.Command, _ []string) (*ports.Frame, error) {
		return c.ResetPreview(ctx)
	}),
}

var previewRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Jump to a random location",
	Args:  cobra.NoArgs,
	RunE: previewAction(func(ctx context.Context, c *navigation.Coordinator, cmd *cobra.Command, _ []string) (*ports.Frame, error) {
		margin, _ := cmd.Flags().GetFloat64("margin")
		return c.RandomPreview(ctx, margin)
	}),
}

var previewSetCmd = &cobra.Command{
	Use:   "set <axis>=<value>...",
	Short: "Set axis values",
	Long:  `Merges the given values into the preview location. Anisotropic values are written x,y.`,
	Example: `  longboard preview set weight=650
  longboard preview set weight=500 optical=10,12`,
	Args: cobra.MinimumNArgs(1),
	RunE: previewAction(func(ctx context.Context, c *navigation.Coordinator, _ *cobra.Command, args []string) (*ports.Frame, error) {
		loc, err := parseLocation(args)
		if err != nil {
			return nil, err
		}
		return c.SetPreviewLocation(ctx, loc)
	}),
}

var previewJumpCmd = &cobra.Command{
	Use:   "jump <name>",
	Short: "Jump to a source or instance",
	Args:  cobra.MinimumNArgs(1),
	RunE: previewAction(func(ctx context.Context, c *navigation.Coordinator, _ *cobra.Command, args []string) (*ports.Frame, error) {
		return c.JumpTo(ctx, strings.Join(args, " "))
	}),
}

type previewFunc func(context.Context, *navigation.Coordinator, *cobra.Command, []string) (*ports.Frame, error)

func previewAction(fn previewFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, true, func(ctx context.Context, c *navigation.Coordinator) error {
			frame, err := fn(ctx, c, cmd, args)
			if err != nil {
				return err
			}
			if frame == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Preview at %s\n", c.Document().PreviewLocation())
				return nil
			}
			return printFrame(cmd, frame)
		})
	}
}

// parseLocation reads axis=value arguments.
func parseLocation(args []string) (domain.Location, error) {
	loc := make(domain.Location, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected <axis>=<value>, got %q", arg)
		}
		parts := strings.Split(raw, ",")
		vals := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("axis %s: %w", name, err)
			}
			vals = append(vals, f)
		}
		switch len(vals) {
		case 1:
			loc[name] = domain.Scalar(vals[0])
		case 2:
			loc[name] = domain.Anisotropic(vals[0], vals[1])
		default:
			return nil, fmt.Errorf("axis %s: expected one or two values", name)
		}
	}
	return loc, nil
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.AddCommand(previewResetCmd, previewRandomCmd, previewSetCmd, previewJumpCmd)
	previewCmd.PersistentFlags().Bool("json", false, "Print the frame as JSON")
	previewRandomCmd.Flags().Float64("margin", -1, "Fraction of each axis span to go beyond its range, negative uses settings")
}
