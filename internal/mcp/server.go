// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "nextmcp"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server and the Nextcloud client it exposes.
type Server struct {
	mcp     *mcpsrv.MCPServer
	cloud   Cloud
	tracker CallRecorder
	logger  *slog.Logger
}

// Option is a functional option for New.
type Option func(*Server)

// WithLogger sets the server logger.  A nil logger falls back to
// slog.Default.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithTracker sets the tool call recorder.  Without one, tool calls are not
// recorded.
func WithTracker(t CallRecorder) Option {
	return func(s *Server) {
		s.tracker = t
	}
}

// New creates a new MCP server backed by the given Cloud.  The server is
// populated with all available tools but does not start listening until one
// of the Serve* methods is called (or Handler is mounted).
func New(cloud Cloud, opt ...Option) *Server {
	s := &Server{
		cloud:  cloud,
		logger: slog.Default(),
	}
	for _, o := range opt {
		o(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions(cloud)),
	)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}
	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the instance to
// the connecting agent.
func instructions(cloud Cloud) string {
	host := "the configured Nextcloud instance"
	if cloud != nil {
		host = cloud.Host()
	}
	return fmt.Sprintf(`You are connected to a nextmcp server for %s.

Available tools allow you to:
- List, search, read, create, update, append to and delete notes
- List calendars and calendar events
- List address books and contacts
- List tables and read table rows
- List, read, write and delete files

Note updates are conditional: update_note requires the etag returned by a
previous read or write of the note, and fails if someone else changed the
note in the meantime.  In that case re-read the note and retry with the
fresh etag.
`, host)
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolListNotes(),
		s.toolGetNote(),
		s.toolSearchNotes(),
		s.toolCreateNote(),
		s.toolUpdateNote(),
		s.toolAppendNote(),
		s.toolDeleteNote(),
		s.toolListCalendars(),
		s.toolListEvents(),
		s.toolListAddressBooks(),
		s.toolListContacts(),
		s.toolListTables(),
		s.toolGetTableRows(),
		s.toolListFiles(),
		s.toolReadFile(),
		s.toolWriteFile(),
		s.toolDeleteFile(),
	}
}

// AddTool adds an additional tool to the MCP server.  It must be called
// before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// record notes a tool invocation in the tracker, if one is configured.
func (s *Server) record(ctx context.Context, tool string) {
	if s.tracker != nil {
		s.tracker.RecordToolCall(tool, ClientIP(ctx))
	}
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// Handler returns the Streamable HTTP handler for mounting into an existing
// router (the web package mounts it at /mcp).
func (s *Server) Handler() http.Handler {
	return mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStateLess(true),
	)
}

// ServeHTTP runs the MCP server as a standalone Streamable HTTP server on
// addr until ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:8483".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named integer argument from a tool call request.  The
// MCP protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int64) int64 {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return defaultVal
}
