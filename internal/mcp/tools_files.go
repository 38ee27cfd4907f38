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

// In this file: file tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

// maxReadSize caps how much of a file read_file returns to the agent.
const maxReadSize = 1 << 20 // 1 MiB

// ─── list_files ───────────────────────────────────────────────────────────────

func (s *Server) toolListFiles() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_files",
		mcplib.WithDescription("List the entries of a folder in the user's file storage."),
		mcplib.WithString("path",
			mcplib.Description("The folder path, e.g. \"/\" or \"/Documents\"."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListFiles}
}

func (s *Server) handleListFiles(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_files")

	path, _ := stringArg(req, "path")
	if path == "" {
		path = "/"
	}
	entries, err := s.cloud.ListFolder(ctx, path)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Folder %q not found.", path)), nil
		}
		return resultErr(fmt.Errorf("list_files: %w", err)), nil
	}
	if len(entries) == 0 {
		return resultText(fmt.Sprintf("Folder %q is empty.", path)), nil
	}
	result, err := resultJSON(entries)
	if err != nil {
		return resultErr(fmt.Errorf("list_files: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── read_file ────────────────────────────────────────────────────────────────

func (s *Server) toolReadFile() mcpsrv.ServerTool {
	tool := mcplib.NewTool("read_file",
		mcplib.WithDescription("Read a text file from the user's file storage. Binary files and files over 1 MiB are refused."),
		mcplib.WithString("path",
			mcplib.Description("The file path, e.g. \"/Documents/todo.md\"."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleReadFile}
}

func (s *Server) handleReadFile(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "read_file")

	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("read_file: path is required")), nil
	}
	data, err := s.cloud.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("File %q not found.", path)), nil
		}
		return resultErr(fmt.Errorf("read_file: %w", err)), nil
	}
	if len(data) > maxReadSize {
		return resultErr(fmt.Errorf("read_file: %q is %d bytes, over the %d byte limit", path, len(data), maxReadSize)), nil
	}
	if !utf8.Valid(data) {
		return resultErr(fmt.Errorf("read_file: %q is not a text file", path)), nil
	}
	return resultText(string(data)), nil
}

// ─── write_file ───────────────────────────────────────────────────────────────

func (s *Server) toolWriteFile() mcpsrv.ServerTool {
	tool := mcplib.NewTool("write_file",
		mcplib.WithDescription("Create or overwrite a file in the user's file storage with the given text content."),
		mcplib.WithString("path",
			mcplib.Description("The file path, e.g. \"/Documents/todo.md\". Parent folders must exist."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("The file content."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleWriteFile}
}

func (s *Server) handleWriteFile(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "write_file")

	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("write_file: path is required")), nil
	}
	content, ok := stringArg(req, "content")
	if !ok {
		return resultErr(errors.New("write_file: content is required")), nil
	}
	if err := s.cloud.WriteFile(ctx, path, []byte(content)); err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Parent folder of %q not found.", path)), nil
		}
		return resultErr(fmt.Errorf("write_file: %w", err)), nil
	}
	s.logger.InfoContext(ctx, "mcp: file written", "path", path, "size", len(content))
	return resultText(fmt.Sprintf("File %q written (%d bytes).", path, len(content))), nil
}

// ─── delete_file ──────────────────────────────────────────────────────────────

func (s *Server) toolDeleteFile() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_file",
		mcplib.WithDescription("Delete a file or folder from the user's file storage."),
		mcplib.WithString("path",
			mcplib.Description("The path to delete."),
			mcplib.Required(),
		),
		mcplib.WithDestructiveHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteFile}
}

func (s *Server) handleDeleteFile(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "delete_file")

	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("delete_file: path is required")), nil
	}
	if err := s.cloud.DeleteFile(ctx, path); err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("%q not found.", path)), nil
		}
		return resultErr(fmt.Errorf("delete_file: %w", err)), nil
	}
	s.logger.InfoContext(ctx, "mcp: file deleted", "path", path)
	return resultText(fmt.Sprintf("%q deleted.", path)), nil
}
