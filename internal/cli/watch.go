package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aretw0/longboard"
	"github.com/aretw0/longboard/internal/presentation/report"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before the file is re-read.
const settleDelay = 100 * time.Millisecond

// RunWatch re-opens a designspace file whenever it changes on disk and
// prints the frame at the persisted preview location. It returns when ctx
// is done.
func RunWatch(ctx context.Context, engine *longboard.Engine, path, glyph string, out io.Writer) error {
	logger := engine.Logger()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	// Editors often replace files, so the directory is watched.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	logger.Info("Starting Watcher", "path", abs)
	printSystemMessage(out, "Watching '%s'.", path)
	reload(ctx, engine, abs, glyph, out)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			pending = time.After(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		case <-pending:
			pending = nil
			printSystemMessage(out, "Change detected in '%s'.", path)
			reload(ctx, engine, abs, glyph, out)
		}
	}
}

// reload registers the file again, which restores the persisted state, and
// prints the current frame. Errors are printed, not returned, so that the
// watcher survives a half-saved file.
func reload(ctx context.Context, engine *longboard.Engine, path, glyph string, out io.Writer) {
	coord, err := engine.OpenPath(ctx, path, glyph)
	if err != nil {
		printSystemMessage(out, "Reload failed: %v", err)
		return
	}
	err = engine.Manager().View(ctx, coord.Document().ID(), func(ctx context.Context, c *navigation.Coordinator) error {
		frame, err := c.Render(ctx)
		if err != nil {
			return err
		}
		return printMarkdown(out, report.Frame(frame))
	})
	if err != nil {
		printSystemMessage(out, "Render failed: %v", err)
	}
}
