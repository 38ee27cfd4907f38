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

// In this file: table tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

// ─── list_tables ──────────────────────────────────────────────────────────────

func (s *Server) toolListTables() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_tables",
		mcplib.WithDescription("List the tables the user can access. Returns table IDs (for use with get_table_rows), titles and row counts."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTables}
}

func (s *Server) handleListTables(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_tables")

	tt, err := s.cloud.Tables(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_tables: %w", err)), nil
	}
	result, err := resultJSON(tt)
	if err != nil {
		return resultErr(fmt.Errorf("list_tables: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_table_rows ───────────────────────────────────────────────────────────

const (
	defRowLimit = 100
	maxRowLimit = 1000
)

func (s *Server) toolGetTableRows() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_table_rows",
		mcplib.WithDescription("Read the rows of a table. Cell values are keyed by column ID."),
		mcplib.WithNumber("id",
			mcplib.Description("The table ID as returned by list_tables."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of rows to return (1–1000, default 100)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTableRows}
}

func (s *Server) handleGetTableRows(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "get_table_rows")

	id := intArg(req, "id", 0)
	if id <= 0 {
		return resultErr(errors.New("get_table_rows: id is required")), nil
	}
	limit := intArg(req, "limit", defRowLimit)
	limit = max(min(limit, maxRowLimit), 1)

	rows, err := s.cloud.TableRows(ctx, id, int(limit))
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Table %d not found.", id)), nil
		}
		return resultErr(fmt.Errorf("get_table_rows: %w", err)), nil
	}
	result, err := resultJSON(rows)
	if err != nil {
		return resultErr(fmt.Errorf("get_table_rows: serialise: %w", err)), nil
	}
	return result, nil
}
