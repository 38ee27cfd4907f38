package nextcloud

// In this file: Notes API operations.  The conditional update protocol lives
// in conditional.go.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Note is a single note as returned by the Notes API.  ETag identifies the
// current revision and changes on every successful mutation; it is required
// for conditional updates.
type Note struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ETag     string `json:"etag"`
	Modified int64  `json:"modified"`
	Favorite bool   `json:"favorite"`
	ReadOnly bool   `json:"readonly"`
}

// NotePatch is a partial update of a note.  Nil fields are left unchanged.
type NotePatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

// empty reports whether the patch changes nothing.
func (p NotePatch) empty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil
}

// Notes returns all notes of the authenticated user.
func (c *Client) Notes(ctx context.Context) ([]Note, error) {
	var nn []Note
	if err := c.getJSON(ctx, notesAPIPath+"/notes", &nn); err != nil {
		return nil, err
	}
	return nn, nil
}

// Note returns a single note by id.  Returns ErrNotFound if the note does
// not exist.
func (c *Client) Note(ctx context.Context, id int64) (*Note, error) {
	var n Note
	if err := c.getJSON(ctx, fmt.Sprintf("%s/notes/%d", notesAPIPath, id), &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// SearchNotes returns the notes whose title, content or category contain the
// query, case-insensitively.  The Notes API has no server side search, so
// the filtering happens client side.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	nn, err := c.Notes(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var found []Note
	for _, n := range nn {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) ||
			strings.Contains(strings.ToLower(n.Category), q) {
			found = append(found, n)
		}
	}
	return found, nil
}

// CreateNote creates a new note and returns it with the server assigned id
// and initial ETag.
func (c *Client) CreateNote(ctx context.Context, title, content, category string) (*Note, error) {
	req := map[string]string{
		"title":    title,
		"content":  content,
		"category": category,
	}
	var n Note
	if err := c.sendJSON(ctx, http.MethodPost, notesAPIPath+"/notes", nil, req, &n, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote deletes the note with the given id.  Deleting a note that does
// not exist returns ErrNotFound.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/notes/%d", notesAPIPath, id)
	resp, err := c.do(ctx, http.MethodDelete, path, jsonHeader(), nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, "DELETE "+path, http.StatusOK, http.StatusNoContent); err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// putNote issues a single conditional PUT with the given If-Match value.  A
// 412 response is mapped to PreconditionError.  This is the raw call that
// the coordinator in conditional.go drives.
func (c *Client) putNote(ctx context.Context, id int64, ifMatch string, patch NotePatch) (*Note, error) {
	path := fmt.Sprintf("%s/notes/%d", notesAPIPath, id)
	hdr := make(http.Header)
	hdr.Set("If-Match", ifMatch)

	var n Note
	err := c.sendJSON(ctx, http.MethodPut, path, hdr, patch, &n, http.StatusOK)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusPreconditionFailed {
			return nil, &PreconditionError{ID: id, ETag: ifMatch}
		}
		return nil, err
	}
	return &n, nil
}
