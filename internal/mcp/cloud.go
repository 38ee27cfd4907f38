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

// In this file: the Cloud interface that tool handlers talk to, and the
// context plumbing for client identity.

import (
	"context"
	"time"

	"github.com/rusq/nextmcp/internal/nextcloud"
)

//go:generate mockgen -destination mock_cloud/mock_cloud.go -package mock_cloud . Cloud

// Cloud is the subset of the nextcloud client that the tool handlers use.
// *nextcloud.Client satisfies it.
type Cloud interface {
	Host() string

	// notes
	Notes(ctx context.Context) ([]nextcloud.Note, error)
	Note(ctx context.Context, id int64) (*nextcloud.Note, error)
	SearchNotes(ctx context.Context, query string) ([]nextcloud.Note, error)
	CreateNote(ctx context.Context, title, content, category string) (*nextcloud.Note, error)
	UpdateNote(ctx context.Context, id int64, etag string, patch nextcloud.NotePatch) (*nextcloud.Note, error)
	AppendToNote(ctx context.Context, id int64, text string) (*nextcloud.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	// calendar
	Calendars(ctx context.Context) ([]nextcloud.Calendar, error)
	Events(ctx context.Context, calendar string, from, to time.Time) ([]nextcloud.Event, error)

	// contacts
	AddressBooks(ctx context.Context) ([]nextcloud.AddressBook, error)
	Contacts(ctx context.Context, book string) ([]nextcloud.Contact, error)

	// tables
	Tables(ctx context.Context) ([]nextcloud.Table, error)
	TableRows(ctx context.Context, id int64, limit int) ([]nextcloud.TableRow, error)

	// files
	ListFolder(ctx context.Context, path string) ([]nextcloud.FileInfo, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	DeleteFile(ctx context.Context, path string) error
}

var _ Cloud = (*nextcloud.Client)(nil)

// CallRecorder receives a record of every tool invocation.
// *analytics.Tracker satisfies it.
type CallRecorder interface {
	RecordToolCall(tool, clientIP string)
}

type ctxKey int

const clientIPKey ctxKey = iota

// WithClientIP returns a context carrying the client address of the inbound
// request.  The HTTP layer sets it; stdio transport has no client address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIP returns the client address from ctx, or "local" when serving over
// stdio.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return "local"
}
