package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/longboard"
	"github.com/aretw0/longboard/internal/config"
	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
)

// Options holds the flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Debug      bool
	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer
}

// CreateLogger builds the application logger. Flags win over the config file.
// Logs go to Stderr so Stdout stays clean for reports and MCP stdio.
func CreateLogger(opts Options, cfg *config.Config) (*slog.Logger, error) {
	levelName := cfg.Log.Level
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	if opts.Debug {
		levelName = "debug"
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	formatName := cfg.Log.Format
	if opts.LogFormat != "" {
		formatName = opts.LogFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(w, level, format), nil
}

// CreateEngine loads the configuration and initializes an engine with
// standard CLI conventions.
func CreateEngine(opts Options, extra ...longboard.Option) (*longboard.Engine, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := CreateLogger(opts, cfg)
	if err != nil {
		return nil, err
	}

	engineOpts := []longboard.Option{longboard.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, longboard.WithLifecycleHooks(createDebugHooks(logger)))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := longboard.New(cfg, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// ResolveDocument opens ref and returns its document ID. ref is either a
// configured document ID or a path to a designspace file; empty means the
// only configured document. A non-empty glyph replaces the configured one.
func ResolveDocument(ctx context.Context, engine *longboard.Engine, ref, glyph string) (string, error) {
	cfg := engine.Config()
	if ref == "" {
		if len(cfg.Documents) != 1 {
			return "", fmt.Errorf("no document given and %d configured", len(cfg.Documents))
		}
		ref = cfg.Documents[0].ID
	}

	var (
		coord *navigation.Coordinator
		err   error
	)
	if _, ok := cfg.Document(ref); ok {
		coord, err = engine.Open(ctx, ref)
	} else if _, statErr := os.Stat(ref); statErr == nil {
		coord, err = engine.OpenPath(ctx, ref, glyph)
	} else {
		return "", fmt.Errorf("%w: %q is neither configured nor a file", domain.ErrDocumentNotFound, ref)
	}
	if err != nil {
		return "", err
	}

	id := coord.Document().ID()
	if glyph != "" {
		err = engine.Manager().View(ctx, id, func(_ context.Context, c *navigation.Coordinator) error {
			c.SetGlyph(glyph)
			return nil
		})
	}
	return id, err
}
