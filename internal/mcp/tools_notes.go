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

// In this file: note tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

// noteSummary is the listing shape of a note: content is omitted to keep
// list results small.
type noteSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	ETag     string `json:"etag"`
	Modified int64  `json:"modified"`
}

func summarizeNotes(nn []nextcloud.Note) []noteSummary {
	ss := make([]noteSummary, 0, len(nn))
	for _, n := range nn {
		ss = append(ss, noteSummary{
			ID:       n.ID,
			Title:    n.Title,
			Category: n.Category,
			ETag:     n.ETag,
			Modified: n.Modified,
		})
	}
	return ss
}

// ─── list_notes ───────────────────────────────────────────────────────────────

func (s *Server) toolListNotes() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_notes",
		mcplib.WithDescription("List all notes. Returns note IDs, titles, categories, etags and modification times; note content is not included, use get_note for that."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListNotes}
}

func (s *Server) handleListNotes(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_notes")

	nn, err := s.cloud.Notes(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_notes: %w", err)), nil
	}
	result, err := resultJSON(summarizeNotes(nn))
	if err != nil {
		return resultErr(fmt.Errorf("list_notes: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_note ─────────────────────────────────────────────────────────────────

func (s *Server) toolGetNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_note",
		mcplib.WithDescription("Get a single note by its ID, including its full content and current etag."),
		mcplib.WithNumber("id",
			mcplib.Description("The note ID."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetNote}
}

func (s *Server) handleGetNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "get_note")

	id := intArg(req, "id", 0)
	if id <= 0 {
		return resultErr(errors.New("get_note: id is required")), nil
	}
	n, err := s.cloud.Note(ctx, id)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return resultErr(fmt.Errorf("get_note: %w", err)), nil
	}
	result, err := resultJSON(n)
	if err != nil {
		return resultErr(fmt.Errorf("get_note: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_notes ─────────────────────────────────────────────────────────────

func (s *Server) toolSearchNotes() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_notes",
		mcplib.WithDescription("Search notes by a case-insensitive substring match over title, content and category."),
		mcplib.WithString("query",
			mcplib.Description("The text to search for."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchNotes}
}

func (s *Server) handleSearchNotes(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "search_notes")

	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("search_notes: query is required")), nil
	}
	nn, err := s.cloud.SearchNotes(ctx, query)
	if err != nil {
		return resultErr(fmt.Errorf("search_notes: %w", err)), nil
	}
	if len(nn) == 0 {
		return resultText(fmt.Sprintf("No notes match %q.", query)), nil
	}
	result, err := resultJSON(summarizeNotes(nn))
	if err != nil {
		return resultErr(fmt.Errorf("search_notes: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── create_note ──────────────────────────────────────────────────────────────

func (s *Server) toolCreateNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_note",
		mcplib.WithDescription("Create a new note. Returns the created note with its server assigned ID and initial etag."),
		mcplib.WithString("title",
			mcplib.Description("The note title."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("The note content (Markdown)."),
		),
		mcplib.WithString("category",
			mcplib.Description("The note category (folder). Empty places the note in the top level."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateNote}
}

func (s *Server) handleCreateNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "create_note")

	title, ok := stringArg(req, "title")
	if !ok || title == "" {
		return resultErr(errors.New("create_note: title is required")), nil
	}
	content, _ := stringArg(req, "content")
	category, _ := stringArg(req, "category")

	n, err := s.cloud.CreateNote(ctx, title, content, category)
	if err != nil {
		return resultErr(fmt.Errorf("create_note: %w", err)), nil
	}
	s.logger.InfoContext(ctx, "mcp: note created", "id", n.ID)
	result, err := resultJSON(n)
	if err != nil {
		return resultErr(fmt.Errorf("create_note: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── update_note ──────────────────────────────────────────────────────────────

func (s *Server) toolUpdateNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_note",
		mcplib.WithDescription(`Update a note's title, content and/or category.

The update is conditional on the etag: pass the etag from the most recent
read or write of this note.  If the note changed in the meantime the server
refetches it once and retries; if the conflict persists, the call fails with
a precondition error and you should re-read the note before trying again.
Omitted fields are left unchanged.`),
		mcplib.WithNumber("id",
			mcplib.Description("The note ID."),
			mcplib.Required(),
		),
		mcplib.WithString("etag",
			mcplib.Description("The etag of the note revision this update is based on."),
			mcplib.Required(),
		),
		mcplib.WithString("title",
			mcplib.Description("New title."),
		),
		mcplib.WithString("content",
			mcplib.Description("New content (replaces the whole note body)."),
		),
		mcplib.WithString("category",
			mcplib.Description("New category."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdateNote}
}

func (s *Server) handleUpdateNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "update_note")

	id := intArg(req, "id", 0)
	if id <= 0 {
		return resultErr(errors.New("update_note: id is required")), nil
	}
	etag, ok := stringArg(req, "etag")
	if !ok || etag == "" {
		return resultErr(errors.New("update_note: etag is required")), nil
	}

	var patch nextcloud.NotePatch
	if title, ok := stringArg(req, "title"); ok {
		patch.Title = &title
	}
	if content, ok := stringArg(req, "content"); ok {
		patch.Content = &content
	}
	if category, ok := stringArg(req, "category"); ok {
		patch.Category = &category
	}

	n, err := s.cloud.UpdateNote(ctx, id, etag, patch)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return resultErr(fmt.Errorf("update_note: %w", err)), nil
	}
	result, err := resultJSON(n)
	if err != nil {
		return resultErr(fmt.Errorf("update_note: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── append_note ──────────────────────────────────────────────────────────────

func (s *Server) toolAppendNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("append_note",
		mcplib.WithDescription("Append text to the end of a note's content. The note is read first and the write is conditional on the etag just read, so concurrent edits are not overwritten."),
		mcplib.WithNumber("id",
			mcplib.Description("The note ID."),
			mcplib.Required(),
		),
		mcplib.WithString("text",
			mcplib.Description("The text to append. A newline is inserted before it if the note does not already end with one."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAppendNote}
}

func (s *Server) handleAppendNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "append_note")

	id := intArg(req, "id", 0)
	if id <= 0 {
		return resultErr(errors.New("append_note: id is required")), nil
	}
	text, ok := stringArg(req, "text")
	if !ok || text == "" {
		return resultErr(errors.New("append_note: text is required")), nil
	}

	n, err := s.cloud.AppendToNote(ctx, id, text)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return resultErr(fmt.Errorf("append_note: %w", err)), nil
	}
	result, err := resultJSON(n)
	if err != nil {
		return resultErr(fmt.Errorf("append_note: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── delete_note ──────────────────────────────────────────────────────────────

func (s *Server) toolDeleteNote() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_note",
		mcplib.WithDescription("Delete a note by its ID. Deleting a note that does not exist is reported as not found."),
		mcplib.WithNumber("id",
			mcplib.Description("The note ID."),
			mcplib.Required(),
		),
		mcplib.WithDestructiveHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteNote}
}

func (s *Server) handleDeleteNote(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "delete_note")

	id := intArg(req, "id", 0)
	if id <= 0 {
		return resultErr(errors.New("delete_note: id is required")), nil
	}
	if err := s.cloud.DeleteNote(ctx, id); err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return resultErr(fmt.Errorf("delete_note: %w", err)), nil
	}
	s.logger.InfoContext(ctx, "mcp: note deleted", "id", id)
	return resultText(fmt.Sprintf("Note %d deleted.", id)), nil
}
