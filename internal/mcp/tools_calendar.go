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

// In this file: calendar tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

// ─── list_calendars ───────────────────────────────────────────────────────────

func (s *Server) toolListCalendars() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_calendars",
		mcplib.WithDescription("List the user's calendars. Returns calendar IDs (for use with list_events) and display names."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListCalendars}
}

func (s *Server) handleListCalendars(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_calendars")

	cals, err := s.cloud.Calendars(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_calendars: %w", err)), nil
	}
	result, err := resultJSON(cals)
	if err != nil {
		return resultErr(fmt.Errorf("list_calendars: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_events ──────────────────────────────────────────────────────────────

const defEventWindow = 30 * 24 * time.Hour

func (s *Server) toolListEvents() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_events",
		mcplib.WithDescription("List events of a calendar within a time range. Without a range, the next 30 days are returned."),
		mcplib.WithString("calendar",
			mcplib.Description("The calendar ID as returned by list_calendars."),
			mcplib.Required(),
		),
		mcplib.WithString("from",
			mcplib.Description("Range start, RFC 3339 (e.g. \"2026-08-01T00:00:00Z\"). Default: now."),
		),
		mcplib.WithString("to",
			mcplib.Description("Range end, RFC 3339, exclusive. Default: 30 days after the range start."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListEvents}
}

func (s *Server) handleListEvents(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_events")

	calendar, ok := stringArg(req, "calendar")
	if !ok || calendar == "" {
		return resultErr(errors.New("list_events: calendar is required")), nil
	}

	from := time.Now()
	if v, ok := stringArg(req, "from"); ok && v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return resultErr(fmt.Errorf("list_events: invalid from value %q: %w", v, err)), nil
		}
		from = t
	}
	to := from.Add(defEventWindow)
	if v, ok := stringArg(req, "to"); ok && v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return resultErr(fmt.Errorf("list_events: invalid to value %q: %w", v, err)), nil
		}
		to = t
	}

	events, err := s.cloud.Events(ctx, calendar, from, to)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Calendar %q not found.", calendar)), nil
		}
		return resultErr(fmt.Errorf("list_events: %w", err)), nil
	}
	if len(events) == 0 {
		return resultText("No events in the given range."), nil
	}
	result, err := resultJSON(events)
	if err != nil {
		return resultErr(fmt.Errorf("list_events: serialise: %w", err)), nil
	}
	return result, nil
}
