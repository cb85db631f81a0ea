package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/longboard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of longboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "longboard version %s\n", strings.TrimSpace(longboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
