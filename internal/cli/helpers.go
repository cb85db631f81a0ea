package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/aretw0/longboard/internal/presentation/tui"
	"github.com/aretw0/longboard/pkg/domain"
)

// SignalContext is a context cancelled by SIGINT or SIGTERM that remembers
// which signal arrived.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc
	sig    atomic.Value
}

// NewSignalContext starts listening for signals until parent is done or
// Cancel is called.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case s := <-ch:
			sc.sig.Store(s)
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	s, _ := sc.sig.Load().(os.Signal)
	return s
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// RenderMarkdown renders markdown for w, styled on terminals.
func RenderMarkdown(w io.Writer, markdown string) (string, error) {
	return tui.RendererFor(w)(markdown)
}

func printMarkdown(w io.Writer, markdown string) error {
	out, err := RenderMarkdown(w, markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGestureBegin: func(ctx context.Context, e *domain.GestureEvent) {
			logger.Debug("Gesture Begin", "document_id", e.DocumentID, "gesture_id", e.GestureID)
		},
		OnSample: func(ctx context.Context, e *domain.GestureEvent) {
			if e.Dropped {
				logger.Debug("Sample Dropped", "gesture_id", e.GestureID)
				return
			}
			logger.Debug("Sample Applied", "gesture_id", e.GestureID, "location", e.Location.String())
		},
		OnUpdateFailed: func(ctx context.Context, e *domain.UpdateEvent) {
			logger.Debug("Update Failed", "glyph", e.Glyph, "location", e.Location.String(), "err", e.Err)
		},
		OnGestureEnd: func(ctx context.Context, e *domain.GestureEvent) {
			logger.Debug("Gesture End", "gesture_id", e.GestureID, "committed", e.Committed, "samples", e.Samples)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// HandleExecutionError maps interruptions to a clean exit.
func HandleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
