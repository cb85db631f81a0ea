package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/aretw0/longboard/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentSummary is the structured result of describe_document.
type DocumentSummary struct {
	ID              string                       `json:"id" jsonschema_description:"Document ID"`
	Axes            []domain.Axis                `json:"axes" jsonschema_description:"Axes of the design space"`
	Preview         domain.Location              `json:"preview" jsonschema_description:"Current preview location"`
	IsExtrapolating bool                         `json:"is_extrapolating" jsonschema_description:"Whether the preview lies outside an axis range"`
	Roles           []navigation.RoleRow         `json:"roles" jsonschema_description:"Drag role and preview value per continuous axis"`
	Interesting     []domain.InterestingLocation `json:"interesting" jsonschema_description:"Sources and instances to jump to"`
	PreviewFilename string                       `json:"preview_filename" jsonschema_description:"File name of the preview font"`
}

// DragResult is returned by the drag tool.
type DragResult struct {
	Location  domain.Location `json:"location"`
	Committed bool            `json:"committed"`
	Applied   int             `json:"applied"`
	Frame     *ports.Frame    `json:"frame,omitempty"`
}

type toolHandler = server.ToolHandlerFunc

// Server exposes a session.Manager as an MCP server.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
	handlers  map[string]toolHandler
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(mgr *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		manager:   mgr,
		mcpServer: server.NewMCPServer("longboard-mcp", version),
		handlers:  make(map[string]toolHandler),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Call invokes a registered tool directly.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	h, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return h(ctx, req)
}

func (s *Server) addTool(tool mcp.Tool, h toolHandler) {
	s.handlers[tool.Name] = h
	s.mcpServer.AddTool(tool, h)
}

func documentArg() mcp.ToolOption {
	return mcp.WithString("document_id", mcp.Required(), mcp.Description("ID of the document"))
}

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the open documents."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string][]string{"documents": s.manager.Documents()})
	})

	s.addTool(mcp.NewTool("describe_document",
		mcp.WithDescription("Describe a document: axes, preview location, drag roles and interesting locations."),
		documentArg(),
		mcp.WithOutputSchema[DocumentSummary](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.addTool(mcp.NewTool("analyze_glyph",
		mcp.WithDescription("Generate a glyph at the preview location and report its shape statistics, kinks and SVG path."),
		documentArg(),
		mcp.WithString("glyph", mcp.Required(), mcp.Description("Glyph name")),
	), s.frameTool(false, func(ctx context.Context, req mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		c.SetGlyph(req.GetString("glyph", ""))
		return c.Render(ctx)
	}))

	s.addTool(mcp.NewTool("set_preview",
		mcp.WithDescription("Merge axis values into the preview location."),
		documentArg(),
		mcp.WithString("location", mcp.Required(), mcp.Description(`JSON object of axis values, e.g. {"weight": 600, "optical": [10, 12]}`)),
	), s.frameTool(true, func(ctx context.Context, req mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		raw, err := req.RequireString("location")
		if err != nil {
			return nil, err
		}
		var loc domain.Location
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			return nil, fmt.Errorf("invalid location: %w", err)
		}
		return c.SetPreviewLocation(ctx, loc)
	}))

	s.addTool(mcp.NewTool("set_axis_value",
		mcp.WithDescription("Set one axis of the preview location."),
		documentArg(),
		mcp.WithString("axis", mcp.Required(), mcp.Description("Axis name")),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("New value")),
	), s.frameTool(true, func(ctx context.Context, req mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		axis, err := req.RequireString("axis")
		if err != nil {
			return nil, err
		}
		value, err := req.RequireFloat("value")
		if err != nil {
			return nil, err
		}
		return c.SetAxisValue(ctx, axis, value)
	}))

	s.addTool(mcp.NewTool("reset_preview",
		mcp.WithDescription("Move every continuous axis to its default, keeping discrete axes."),
		documentArg(),
	), s.frameTool(true, func(ctx context.Context, _ mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.ResetPreview(ctx)
	}))

	s.addTool(mcp.NewTool("random_preview",
		mcp.WithDescription("Jump to a random location. The margin widens each axis range by that fraction of its span."),
		documentArg(),
		mcp.WithNumber("margin", mcp.Description("Fraction of the axis span, default from settings")),
	), s.frameTool(true, func(ctx context.Context, req mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		return c.RandomPreview(ctx, req.GetFloat("margin", -1))
	}))

	s.addTool(mcp.NewTool("jump_to",
		mcp.WithDescription("Jump to a named source or instance."),
		documentArg(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name from describe_document's interesting list")),
	), s.frameTool(true, func(ctx context.Context, req mcp.CallToolRequest, c *navigation.Coordinator) (*ports.Frame, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return nil, err
		}
		return c.JumpTo(ctx, name)
	}))

	s.addTool(mcp.NewTool("set_role",
		mcp.WithDescription("Bind an axis to horizontal or vertical drags, or ignore it."),
		documentArg(),
		mcp.WithString("axis", mcp.Required(), mcp.Description("Axis name")),
		mcp.WithString("role", mcp.Required(), mcp.Enum("horizontal", "vertical", "ignore")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		axis := req.GetString("axis", "")
		role, err := domain.ParseAxisRole(req.GetString("role", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var rows []navigation.RoleRow
		err = s.manager.Update(ctx, req.GetString("document_id", ""), func(_ context.Context, c *navigation.Coordinator) error {
			if err := c.SetRole(axis, role); err != nil {
				return err
			}
			rows = c.RoleTable()
			return nil
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(rows)
	})

	s.addTool(mcp.NewTool("add_instance",
		mcp.WithDescription("Add an instance at the preview location."),
		documentArg(),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var inst domain.Instance
		err := s.manager.Update(ctx, req.GetString("document_id", ""), func(ctx context.Context, c *navigation.Coordinator) error {
			var err error
			inst, err = c.AddInstance(ctx)
			return err
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(inst)
	})

	s.addTool(mcp.NewTool("drag",
		mcp.WithDescription("Simulate a pointer drag over a glyph: dx/dy screen units spread over steps samples and duration_ms."),
		documentArg(),
		mcp.WithString("glyph", mcp.Required(), mcp.Description("Glyph name")),
		mcp.WithNumber("dx", mcp.Description("Horizontal travel")),
		mcp.WithNumber("dy", mcp.Description("Vertical travel")),
		mcp.WithNumber("steps", mcp.Description("Number of moves after the baseline sample, default 10")),
		mcp.WithNumber("duration_ms", mcp.Description("Total drag time, default 1000")),
		mcp.WithBoolean("constrain", mcp.Description("Hold the constrain modifier")),
		mcp.WithBoolean("precision", mcp.Description("Hold the precision modifier")),
		mcp.WithBoolean("commit", mcp.Description("Commit on release, default true")),
	), s.handleDrag)
}

func (s *Server) handleDescribe(ctx context.Context, req mcp.CallToolRequest, args map[string]any) (DocumentSummary, error) {
	id, _ := args["document_id"].(string)
	var sum DocumentSummary
	err := s.manager.View(ctx, id, func(_ context.Context, c *navigation.Coordinator) error {
		doc := c.Document()
		sum = DocumentSummary{
			ID:              doc.ID(),
			Axes:            doc.Axes(),
			Preview:         doc.PreviewLocation(),
			IsExtrapolating: c.Space().IsExtrapolated(doc.PreviewLocation()),
			Roles:           c.RoleTable(),
			Interesting:     c.InterestingLocations(),
			PreviewFilename: c.PreviewFilename(),
		}
		return nil
	})
	return sum, err
}

// frameTool wraps a coordinator action returning a frame.
func (s *Server) frameTool(mutates bool, fn func(context.Context, mcp.CallToolRequest, *navigation.Coordinator) (*ports.Frame, error)) toolHandler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("document_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var frame *ports.Frame
		var preview domain.Location
		run := func(ctx context.Context, c *navigation.Coordinator) error {
			var err error
			frame, err = fn(ctx, req, c)
			preview = c.Document().PreviewLocation()
			return err
		}
		if mutates {
			err = s.manager.Update(ctx, id, run)
		} else {
			err = s.manager.View(ctx, id, run)
		}
		if err != nil {
			s.logger.Debug("tool failed", "tool", req.Params.Name, "err", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		if frame == nil {
			return jsonResult(map[string]any{"preview": preview})
		}
		return jsonResult(frame)
	}
}

func (s *Server) handleDrag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	glyph := req.GetString("glyph", "")
	dx, dy := req.GetFloat("dx", 0), req.GetFloat("dy", 0)
	steps := int(req.GetFloat("steps", 10))
	duration := time.Duration(req.GetFloat("duration_ms", 1000) * float64(time.Millisecond))
	commit := req.GetBool("commit", true)

	var mods domain.Modifier
	if req.GetBool("constrain", false) {
		mods |= domain.ModConstrain
	}
	if req.GetBool("precision", false) {
		mods |= domain.ModPrecision
	}

	var res DragResult
	err = s.manager.Update(ctx, id, func(ctx context.Context, c *navigation.Coordinator) error {
		samples := navigation.LinearSamples(dx, dy, steps, duration, mods)
		frame, applied, err := c.Drag(ctx, glyph, samples, commit)
		res = DragResult{
			Location:  c.Document().PreviewLocation(),
			Committed: commit && err == nil,
			Applied:   applied,
			Frame:     frame,
		}
		return err
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("longboard://documents", "Open documents",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.manager.Documents())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "longboard://documents",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
