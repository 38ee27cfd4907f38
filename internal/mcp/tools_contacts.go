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

// In this file: contact tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

// ─── list_addressbooks ────────────────────────────────────────────────────────

func (s *Server) toolListAddressBooks() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_addressbooks",
		mcplib.WithDescription("List the user's address books. Returns address book IDs (for use with list_contacts) and display names."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListAddressBooks}
}

func (s *Server) handleListAddressBooks(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_addressbooks")

	books, err := s.cloud.AddressBooks(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_addressbooks: %w", err)), nil
	}
	result, err := resultJSON(books)
	if err != nil {
		return resultErr(fmt.Errorf("list_addressbooks: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_contacts ────────────────────────────────────────────────────────────

func (s *Server) toolListContacts() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_contacts",
		mcplib.WithDescription("List the contacts of an address book. Returns names, email addresses and phone numbers."),
		mcplib.WithString("addressbook",
			mcplib.Description("The address book ID as returned by list_addressbooks."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListContacts}
}

func (s *Server) handleListContacts(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	s.record(ctx, "list_contacts")

	book, ok := stringArg(req, "addressbook")
	if !ok || book == "" {
		return resultErr(errors.New("list_contacts: addressbook is required")), nil
	}
	contacts, err := s.cloud.Contacts(ctx, book)
	if err != nil {
		if errors.Is(err, nextcloud.ErrNotFound) {
			return resultText(fmt.Sprintf("Address book %q not found.", book)), nil
		}
		return resultErr(fmt.Errorf("list_contacts: %w", err)), nil
	}
	if len(contacts) == 0 {
		return resultText(fmt.Sprintf("Address book %q is empty.", book)), nil
	}
	result, err := resultJSON(contacts)
	if err != nil {
		return resultErr(fmt.Errorf("list_contacts: serialise: %w", err)), nil
	}
	return result, nil
}
