package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/longboard"
	"github.com/aretw0/longboard/internal/cli"
	"github.com/aretw0/longboard/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "longboard",
	Short: "Longboard navigates the design space of variable fonts",
	Long: `Longboard moves a font's preview location through its design space the way a
pointer drag would, regenerating and measuring the glyph at every step.

Documents are designspace YAML files, either listed in longboard.yaml or given by path.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", config.DefaultPath, "Configuration file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Bool("debug", false, "Log gesture events")
	pf.StringP("doc", "d", "", "Document ID from the configuration or path to a designspace file")
	pf.StringP("glyph", "g", "", "Glyph to preview")
}

func cliOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	level, _ := flags.GetString("log-level")
	format, _ := flags.GetString("log-format")
	debug, _ := flags.GetBool("debug")
	return cli.Options{
		ConfigPath: configPath,
		LogLevel:   level,
		LogFormat:  format,
		Debug:      debug,
		Stderr:     cmd.ErrOrStderr(),
	}
}

func newEngine(cmd *cobra.Command, opts ...longboard.Option) (*longboard.Engine, error) {
	return cli.CreateEngine(cliOptions(cmd), opts...)
}

// openDocument creates the engine and opens the --doc document.
func openDocument(cmd *cobra.Command) (*longboard.Engine, string, error) {
	engine, err := newEngine(cmd)
	if err != nil {
		return nil, "", err
	}
	ref, _ := cmd.Flags().GetString("doc")
	glyph, _ := cmd.Flags().GetString("glyph")
	id, err := cli.ResolveDocument(cmd.Context(), engine, ref, glyph)
	if err != nil {
		engine.Close()
		return nil, "", err
	}
	return engine, id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMarkdown(w io.Writer, markdown string) error {
	out, err := cli.RenderMarkdown(w, markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
