package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"mdnotes/internal/bridge"
	"mdnotes/internal/errhandler"
)

// methodResourcesListChanged tells MCP clients to re-list resources.
const methodResourcesListChanged = "notifications/resources/list_changed"

// EventEmitter lets the server tell the UI that the agent changed notes.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Server is the MCP server for mdnotes.
// It exposes the note operations to AI agents through the bridge client,
// so agents see exactly what the UI sees.
type Server struct {
	mcp     *server.MCPServer
	client  *bridge.Client
	emitter EventEmitter
	errs    *errhandler.Handler

	unsubscribe func()
}

// Deps holds everything passed from the App layer to the MCP server.
type Deps struct {
	Client  *bridge.Client
	Emitter EventEmitter
	Errs    *errhandler.Handler
	Version string
}

// New creates and configures the MCP server with its tools, resources
// and prompts.
func New(ctx context.Context, deps Deps) *Server {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		client:  deps.Client,
		emitter: deps.Emitter,
		errs:    deps.Errs,
	}

	s.mcp = server.NewMCPServer(
		"mdnotes-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	s.registerNoteTools()
	s.registerResources()
	s.registerPrompts()

	s.unsubscribe = s.client.OnLoadNotes(func() { s.notesChanged(ctx) })
	return s
}

// ServeStdio serves MCP on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.errs.Info(context.Background(), "starting MCP stdio server", errhandler.CategoryIPC, nil)
	return server.ServeStdio(s.mcp)
}

// Close stops forwarding note changes to MCP clients.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// notesChanged tells connected agents to re-read the note list.
func (s *Server) notesChanged(ctx context.Context) {
	s.errs.Debug(ctx, "notes changed, notifying MCP clients", errhandler.CategoryIPC, nil)
	s.mcp.SendNotificationToAllClients(methodResourcesListChanged, nil)
}

// emitNotesChanged asks the UI to reload after an agent write.
func (s *Server) emitNotesChanged(ctx context.Context) {
	if s.emitter != nil {
		s.emitter.Emit(ctx, bridge.EventLoadNotes, nil)
	}
}
