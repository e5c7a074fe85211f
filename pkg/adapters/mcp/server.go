// Package mcp exposes the rescue flow as Model Context Protocol tools, so an
// agent can walk a user through a session.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/archive"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	sessionsURI = "mindbuffer://sessions"
	summaryURI  = "mindbuffer://summary"
)

// Server wraps a Coach and exposes its session manager as an MCP server.
type Server struct {
	coach     *mindbuffer.Coach
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls and transport errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server for coach.
func NewServer(coach *mindbuffer.Coach, opts ...Option) *Server {
	s := &Server{
		coach:  coach,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("mindbuffer-mcp", strings.TrimSpace(mindbuffer.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio speaks JSON-RPC over in and out until ctx ends or in is
// exhausted. Nothing but protocol messages is written to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// ServeSSE serves the SSE transport on addr until ctx ends.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sse.MessageHandler()))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "addr", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type openArgs struct {
	InitialStress int `json:"initial_stress"`
}

type flowArgs struct {
	FlowID string `json:"flow_id"`
}

type submitArgs struct {
	FlowID string `json:"flow_id"`
	Text   string `json:"text"`
}

type cardArgs struct {
	FlowID string `json:"flow_id"`
	CardID string `json:"card_id"`
}

// AbortResponse reports a discarded session.
type AbortResponse struct {
	FlowID    string `json:"flow_id" jsonschema_description:"The discarded session"`
	Discarded bool   `json:"discarded" jsonschema_description:"Always true; nothing was archived"`
}

func flowID() mcp.ToolOption {
	return mcp.WithString("flow_id", mcp.Required(), mcp.Description("Session ID returned by open_flow"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("open_flow",
		mcp.WithDescription("Start a rescue session. Fails while another session is active."),
		mcp.WithNumber("initial_stress", mcp.Required(), mcp.Min(0), mcp.Max(100),
			mcp.Description("Self-reported stress before the session, 0 to 100")),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.handleOpen))

	s.mcpServer.AddTool(mcp.NewTool("get_flow",
		mcp.WithDescription("Read the current state of a session."),
		flowID(),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("submit",
		mcp.WithDescription("Answer the current chat question with the user's words."),
		flowID(),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the user said")),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("generate_lenses",
		mcp.WithDescription("Leave the chat and deal three lens cards."),
		flowID(),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.step(func(ctx context.Context, f *flow.Flow) error {
		return f.GenerateLenses(ctx)
	})))

	s.mcpServer.AddTool(mcp.NewTool("refresh_lenses",
		mcp.WithDescription("Deal new lens cards. Past the refresh cap the cards stay and notice is set."),
		flowID(),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.handleRefresh))

	s.mcpServer.AddTool(mcp.NewTool("select_lens",
		mcp.WithDescription("Pick one of the dealt lens cards."),
		flowID(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of a card in lenses")),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.pick(func(ctx context.Context, f *flow.Flow, id string) error {
		return f.SelectLens(ctx, id)
	})))

	s.mcpServer.AddTool(mcp.NewTool("shuffle_actions",
		mcp.WithDescription("Deal a new set of micro actions for the chosen lens."),
		flowID(),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.step(func(ctx context.Context, f *flow.Flow) error {
		return f.ShuffleActions(ctx)
	})))

	s.mcpServer.AddTool(mcp.NewTool("select_action",
		mcp.WithDescription("Pick one of the dealt micro actions. Records the final stress."),
		flowID(),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of a card in actions")),
		mcp.WithOutputSchema[flow.View](),
	), mcp.NewStructuredToolHandler(s.pick(func(ctx context.Context, f *flow.Flow, id string) error {
		return f.SelectAction(ctx, id)
	})))

	s.mcpServer.AddTool(mcp.NewTool("finish",
		mcp.WithDescription("Archive a session that reached its result."),
		flowID(),
		mcp.WithOutputSchema[domain.SessionData](),
	), mcp.NewStructuredToolHandler(s.handleFinish))

	s.mcpServer.AddTool(mcp.NewTool("abort",
		mcp.WithDescription("Discard a session without archiving it."),
		flowID(),
		mcp.WithOutputSchema[AbortResponse](),
	), mcp.NewStructuredToolHandler(s.handleAbort))
}

func (s *Server) handleOpen(ctx context.Context, _ mcp.CallToolRequest, args openArgs) (flow.View, error) {
	if args.InitialStress < 0 || args.InitialStress > 100 {
		return flow.View{}, fmt.Errorf("initial_stress must be within 0..100, got %d", args.InitialStress)
	}
	id, f, err := s.coach.Sessions.Open(ctx, args.InitialStress)
	if err != nil {
		return flow.View{}, err
	}
	s.logger.DebugContext(ctx, "MCP flow opened", "flow_id", id)
	return flow.Snapshot(id, f), nil
}

func (s *Server) handleGet(_ context.Context, _ mcp.CallToolRequest, args flowArgs) (flow.View, error) {
	f, err := s.coach.Sessions.Get(args.FlowID)
	if err != nil {
		return flow.View{}, err
	}
	return flow.Snapshot(args.FlowID, f), nil
}

func (s *Server) handleSubmit(ctx context.Context, _ mcp.CallToolRequest, args submitArgs) (flow.View, error) {
	f, err := s.coach.Sessions.Get(args.FlowID)
	if err != nil {
		return flow.View{}, err
	}
	if err := f.Submit(ctx, args.Text); err != nil {
		s.logger.WarnContext(ctx, "MCP submit rejected", "flow_id", args.FlowID, "err", err, "size", len(args.Text))
		return flow.View{}, err
	}
	return flow.Snapshot(args.FlowID, f), nil
}

func (s *Server) handleRefresh(ctx context.Context, _ mcp.CallToolRequest, args flowArgs) (flow.View, error) {
	f, err := s.coach.Sessions.Get(args.FlowID)
	if err != nil {
		return flow.View{}, err
	}
	err = f.RefreshLenses(ctx)
	if err != nil && !errors.Is(err, domain.ErrRefreshLimit) {
		return flow.View{}, err
	}
	v := flow.Snapshot(args.FlowID, f)
	if err != nil {
		v.Notice = f.LimitNotice()
	}
	return v, nil
}

func (s *Server) handleFinish(ctx context.Context, _ mcp.CallToolRequest, args flowArgs) (domain.SessionData, error) {
	record, err := s.coach.Sessions.Complete(ctx, args.FlowID)
	if err != nil {
		return domain.SessionData{}, err
	}
	return *record, nil
}

func (s *Server) handleAbort(ctx context.Context, _ mcp.CallToolRequest, args flowArgs) (AbortResponse, error) {
	if err := s.coach.Sessions.Abort(ctx, args.FlowID); err != nil {
		return AbortResponse{}, err
	}
	return AbortResponse{FlowID: args.FlowID, Discarded: true}, nil
}

// step adapts a flow operation without arguments to a tool handler.
func (s *Server) step(op func(context.Context, *flow.Flow) error) mcp.StructuredToolHandlerFunc[flowArgs, flow.View] {
	return func(ctx context.Context, _ mcp.CallToolRequest, args flowArgs) (flow.View, error) {
		f, err := s.coach.Sessions.Get(args.FlowID)
		if err != nil {
			return flow.View{}, err
		}
		if err := op(ctx, f); err != nil {
			return flow.View{}, err
		}
		return flow.Snapshot(args.FlowID, f), nil
	}
}

// pick adapts a card selection to a tool handler.
func (s *Server) pick(op func(context.Context, *flow.Flow, string) error) mcp.StructuredToolHandlerFunc[cardArgs, flow.View] {
	return func(ctx context.Context, _ mcp.CallToolRequest, args cardArgs) (flow.View, error) {
		f, err := s.coach.Sessions.Get(args.FlowID)
		if err != nil {
			return flow.View{}, err
		}
		if err := op(ctx, f, args.CardID); err != nil {
			return flow.View{}, err
		}
		return flow.Snapshot(args.FlowID, f), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(sessionsURI, "Archived sessions",
		mcp.WithResourceDescription("Completed rescue sessions, newest first"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := s.coach.Archive.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		return jsonResource(sessionsURI, sessions)
	})

	s.mcpServer.AddResource(mcp.NewResource(summaryURI, "Archive summary",
		mcp.WithResourceDescription("Totals over the archived sessions"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := s.coach.Archive.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		return jsonResource(summaryURI, archive.Summarize(sessions))
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
