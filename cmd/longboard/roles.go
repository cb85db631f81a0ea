package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [<axis>=<role>...]",
	Short: "Show or change which axes follow the pointer",
	Long: `Without arguments prints the role table. With arguments binds axes to horizontal or
vertical drags, or ignores them. Roles are saved with the document.`,
	Example: `  longboard roles
  longboard roles weight=vertical width=horizontal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, len(args) > 0, func(ctx context.Context, c *navigation.Coordinator) error {
			if len(args) > 0 {
				roles := c.Roles()
				for _, arg := range args {
					axis, raw, ok := strings.Cut(arg, "=")
					if !ok {
						return fmt.Errorf("expected <axis>=<role>, got %q", arg)
					}
					role, err := domain.ParseAxisRole(raw)
					if err != nil {
						return err
					}
					if _, ok := c.Space().Axis(axis); !ok {
						return fmt.Errorf("%w: %q", domain.ErrUnknownAxis, axis)
					}
					roles = roles.With(axis, role)
				}
				if err := c.SetRoles(roles); err != nil {
					return err
				}
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return printJSON(cmd.OutOrStdout(), c.RoleTable())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AXIS\tROLE\tVALUE")
			for _, row := range c.RoleTable() {
				value := "-"
				if row.Value != nil {
					value = row.Value.String()
					if row.Extrapolated {
						value += " (extrapolated)"
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Axis, row.Role, value)
			}
			return tw.Flush()
		})
	},
}

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage instances",
}

var instanceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an instance at the preview location",
	Long: `Adds an instance named after the preview location. The instance lives in the
loaded document; designspace files on disk are not rewritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, true, func(ctx context.Context, c *navigation.Coordinator) error {
			inst, err := c.AddInstance(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added instance '%s %s' at %s\n", inst.FamilyName, inst.StyleName, inst.Location)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd, instanceCmd)
	instanceCmd.AddCommand(instanceAddCmd)
	rolesCmd.Flags().Bool("json", false, "Print JSON")
}
