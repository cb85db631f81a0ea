package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/longboard/internal/presentation/report"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
)

const consoleHelp = `Commands:
  r, random [margin]      jump to a random location
  0, reset                reset continuous axes to their defaults
  j, jump <name>          jump to a source or instance
  s, set <axis> <value>   set one axis
  d, drag <dx> <dy>       drag the pointer over one second
  g, glyph <name>         switch glyph
  role <axis> <role>      bind an axis to horizontal, vertical or ignore
  a, add                  add an instance at the preview location
  i, info                 show the document
  q, quit                 leave
`

// Console is a line-oriented explorer over one document.
type Console struct {
	mgr *session.Manager
	id  string
	in  io.Reader
	out io.Writer
}

// NewConsole creates a console reading commands from in.
func NewConsole(mgr *session.Manager, documentID string, in io.Reader, out io.Writer) *Console {
	return &Console{mgr: mgr, id: documentID, in: in, out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printSystemMessage(c.out, "Exploring '%s'. Type 'h' for help.", c.id)
	if err := c.show(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := c.Exec(ctx, line)
			if quit {
				return nil
			}
			if err != nil {
				printSystemMessage(c.out, "%v", err)
			}
		}
	}
}

// Exec runs one command line. quit is set by q, quit and exit.
func (c *Console) Exec(ctx context.Context, line string) (quit bool, err error) {
	line, err = SanitizeInput(line)
	if err != nil {
		return false, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, c.show(ctx)
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		_, err := io.WriteString(c.out, consoleHelp)
		return false, err
	case "i", "info":
		return false, c.mgr.View(ctx, c.id, func(_ context.Context, co *navigation.Coordinator) error {
			return printMarkdown(c.out, report.Document(co))
		})
	case "g", "glyph":
		if len(args) != 1 {
			return false, errors.New("usage: glyph <name>")
		}
		if err := c.mgr.View(ctx, c.id, func(_ context.Context, co *navigation.Coordinator) error {
			co.SetGlyph(args[0])
			return nil
		}); err != nil {
			return false, err
		}
		return false, c.show(ctx)
	case "a", "add":
		return false, c.mgr.Update(ctx, c.id, func(ctx context.Context, co *navigation.Coordinator) error {
			inst, err := co.AddInstance(ctx)
			if err != nil {
				return err
			}
			printSystemMessage(c.out, "Added instance '%s %s'.", inst.FamilyName, inst.StyleName)
			return nil
		})
	case "role":
		if len(args) != 2 {
			return false, errors.New("usage: role <axis> <horizontal|vertical|ignore>")
		}
		role, err := domain.ParseAxisRole(args[1])
		if err != nil {
			return false, err
		}
		return false, c.mgr.Update(ctx, c.id, func(_ context.Context, co *navigation.Coordinator) error {
			return co.SetRole(args[0], role)
		})
	}

	action, err := c.action(cmd, args)
	if err != nil {
		return false, err
	}
	return false, c.mgr.Update(ctx, c.id, func(ctx context.Context, co *navigation.Coordinator) error {
		frame, err := action(ctx, co)
		if err != nil {
			return err
		}
		return c.printFrame(co, frame)
	})
}

type frameAction func(context.Context, *navigation.Coordinator) (*ports.Frame, error)

func (c *Console) action(cmd string, args []string) (frameAction, error) {
	switch cmd {
	case "r", "random":
		margin := -1.0
		if len(args) == 1 {
			m, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid margin: %w", err)
			}
			margin = m
		}
		return func(ctx context.Context, co *navigation.Coordinator) (*ports.Frame, error) {
			return co.RandomPreview(ctx, margin)
		}, nil
	case "0", "reset":
		return func(ctx context.Context, co *navigation.Coordinator) (*ports.Frame, error) {
			return co.ResetPreview(ctx)
		}, nil
	case "j", "jump":
		if len(args) == 0 {
			return nil, errors.New("usage: jump <name>")
		}
		name := strings.Join(args, " ")
		return func(ctx context.Context, co *navigation.Coordinator) (*ports.Frame, error) {
			return co.JumpTo(ctx, name)
		}, nil
	case "s", "set":
		if len(args) != 2 {
			return nil, errors.New("usage: set <axis> <value>")
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		return func(ctx context.Context, co *navigation.Coordinator) (*ports.Frame, error) {
			return co.SetAxisValue(ctx, args[0], v)
		}, nil
	case "d", "drag":
		if len(args) != 2 {
			return nil, errors.New("usage: drag <dx> <dy>")
		}
		dx, errX := strconv.ParseFloat(args[0], 64)
		dy, errY := strconv.ParseFloat(args[1], 64)
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("invalid drag: %w", err)
		}
		return func(ctx context.Context, co *navigation.Coordinator) (*ports.Frame, error) {
			frame, _, err := co.Drag(ctx, "", navigation.LinearSamples(dx, dy, 10, time.Second, 0), true)
			return frame, err
		}, nil
	}
	return nil, fmt.Errorf("unknown command %q, type 'h' for help", cmd)
}

func (c *Console) show(ctx context.Context) error {
	return c.mgr.View(ctx, c.id, func(ctx context.Context, co *navigation.Coordinator) error {
		if co.Glyph() == "" {
			printSystemMessage(c.out, "No glyph selected. Use 'glyph <name>'.")
			return nil
		}
		frame, err := co.Render(ctx)
		if err != nil {
			return err
		}
		return c.printFrame(co, frame)
	})
}

func (c *Console) printFrame(co *navigation.Coordinator, frame *ports.Frame) error {
	if frame == nil {
		printSystemMessage(c.out, "Preview at %s.", co.Document().PreviewLocation())
		return nil
	}
	printSystemMessage(c.out, "%s at %s", frame.Glyph, frame.Location)
	return printMarkdown(c.out, report.Frame(frame))
}
