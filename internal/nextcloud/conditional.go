package nextcloud

// In this file: the conditional update coordinator.  A note update must carry
// the ETag of the revision the caller has seen; the server rejects the write
// with 412 if the note has changed since.  Two complications are handled
// here: proxies and client libraries disagree on whether an If-Match value
// must be quoted, and a stale ETag is recoverable by refetching once.

import (
	"context"
	"strings"
)

// etagEncodings returns the candidate textual encodings of an ETag, in the
// order they are to be tried: as given, wrapped in double quotes, and with
// any embedded double quotes stripped.
func etagEncodings(tag string) []string {
	return []string{
		tag,
		`"` + tag + `"`,
		strings.ReplaceAll(tag, `"`, ""),
	}
}

// UpdateNote applies a partial update to the note with the given id,
// conditional on etag matching the note's current revision.  Each encoding
// of the tag is tried in turn; only a precondition failure advances to the
// next encoding, any other error aborts immediately.  If every encoding is
// rejected, the note is refetched once and the whole cycle is repeated with
// the current ETag.  If that retry also fails on the precondition, or the
// refetch itself fails, the original precondition error is returned so that
// the caller sees the actionable detail.
//
// At most two logical attempts are made, each trying up to three encodings,
// plus one refetch: seven requests worst case.
func (c *Client) UpdateNote(ctx context.Context, id int64, etag string, patch NotePatch) (*Note, error) {
	return c.condUpdate(ctx, id, etag, patch, true)
}

func (c *Client) condUpdate(ctx context.Context, id int64, etag string, patch NotePatch, mayRefresh bool) (*Note, error) {
	var precondErr error
	for _, enc := range etagEncodings(etag) {
		n, err := c.putNote(ctx, id, enc, patch)
		if err == nil {
			return n, nil
		}
		if !isPrecondition(err) {
			return nil, err
		}
		precondErr = err
	}
	if !mayRefresh {
		return nil, precondErr
	}

	c.lg.DebugContext(ctx, "conditional update rejected, refetching", "id", id, "etag", etag)
	cur, err := c.Note(ctx, id)
	if err != nil {
		// the refresh failure is deliberately discarded: the original
		// precondition error carries the detail the caller can act on.
		c.lg.DebugContext(ctx, "refetch failed", "id", id, "error", err)
		return nil, precondErr
	}
	n, err := c.condUpdate(ctx, id, cur.ETag, patch, false)
	if err != nil {
		if isPrecondition(err) {
			return nil, precondErr
		}
		return nil, err
	}
	return n, nil
}

// AppendToNote appends text to the note's content as a conditional update:
// the note is fetched, and the concatenated content is written back under
// the fetched ETag.  A concurrent edit between the fetch and the write is
// resolved by UpdateNote's refetch cycle.
func (c *Client) AppendToNote(ctx context.Context, id int64, text string) (*Note, error) {
	n, err := c.Note(ctx, id)
	if err != nil {
		return nil, err
	}
	content := n.Content
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += text
	return c.UpdateNote(ctx, id, n.ETag, NotePatch{Content: &content})
}
