package nextcloud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtagEncodings(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want []string
	}{
		{
			name: "bare tag",
			tag:  "abc123",
			want: []string{`abc123`, `"abc123"`, `abc123`},
		},
		{
			name: "quoted tag",
			tag:  `"abc123"`,
			want: []string{`"abc123"`, `""abc123""`, `abc123`},
		},
		{
			name: "empty tag",
			tag:  "",
			want: []string{``, `""`, ``},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, etagEncodings(tt.tag))
		})
	}
}

// noteServer is a test double for the Notes API that accepts conditional
// updates only when the If-Match value satisfies accept.  It records every
// If-Match value it sees and counts GETs of the note.
type noteServer struct {
	t      *testing.T
	note   Note
	accept func(ifMatch string) bool

	ifMatches []string
	gets      int
}

func (ns *noteServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ns.gets++
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(ns.note); err != nil {
				ns.t.Error(err)
			}
		case http.MethodPut:
			im := r.Header.Get("If-Match")
			ns.ifMatches = append(ns.ifMatches, im)
			if !ns.accept(im) {
				w.WriteHeader(http.StatusPreconditionFailed)
				return
			}
			var patch NotePatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				ns.t.Error(err)
			}
			if patch.Title != nil {
				ns.note.Title = *patch.Title
			}
			if patch.Content != nil {
				ns.note.Content = *patch.Content
			}
			if patch.Category != nil {
				ns.note.Category = *patch.Category
			}
			ns.note.ETag = ns.note.ETag + "x" // new revision
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(ns.note); err != nil {
				ns.t.Error(err)
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func testClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cl, err := New(srv.URL, "alice", "secret")
	require.NoError(t, err)
	return cl
}

func strptr(s string) *string { return &s }

func TestUpdateNote_firstEncodingSucceeds(t *testing.T) {
	ns := &noteServer{
		t:      t,
		note:   Note{ID: 1, Title: "A", Content: "x", ETag: "t0"},
		accept: func(im string) bool { return im == "t0" },
	}
	cl := testClient(t, ns.handler())

	n, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("y")})
	require.NoError(t, err)
	assert.Equal(t, "y", n.Content)
	assert.NotEqual(t, "t0", n.ETag, "successful update must return a new tag")
	assert.Equal(t, []string{"t0"}, ns.ifMatches, "must short-circuit on first success")
	assert.Zero(t, ns.gets, "no refetch on success")
}

func TestUpdateNote_quotedOnlyService(t *testing.T) {
	// a service that insists on the quoted form must succeed on the second
	// encoding, without triggering the refetch recovery.
	ns := &noteServer{
		t:      t,
		note:   Note{ID: 1, ETag: "t0"},
		accept: func(im string) bool { return im == `"t0"` },
	}
	cl := testClient(t, ns.handler())

	n, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("y")})
	require.NoError(t, err)
	assert.Equal(t, "y", n.Content)
	assert.Equal(t, []string{"t0", `"t0"`}, ns.ifMatches)
	assert.Zero(t, ns.gets, "recovery must not run when an encoding succeeds")
}

func TestUpdateNote_staleTagRecovers(t *testing.T) {
	// the caller holds t0 but the note has moved on to t1: all three
	// encodings fail, one refetch obtains t1, and the retry applies.
	ns := &noteServer{
		t:      t,
		note:   Note{ID: 1, Content: "y", ETag: "t1"},
		accept: func(im string) bool { return im == "t1" },
	}
	cl := testClient(t, ns.handler())

	n, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("z")})
	require.NoError(t, err)
	assert.Equal(t, "z", n.Content)
	assert.Equal(t, 1, ns.gets, "exactly one refetch")
	assert.Equal(t, []string{"t0", `"t0"`, "t0", "t1"}, ns.ifMatches)
}

func TestUpdateNote_conflictPersists(t *testing.T) {
	// even the refreshed tag is rejected (an externally concurrent writer
	// keeps winning): the surfaced error is the original precondition
	// failure, and only one recovery cycle runs.
	ns := &noteServer{
		t:      t,
		note:   Note{ID: 1, ETag: "t1"},
		accept: func(string) bool { return false },
	}
	cl := testClient(t, ns.handler())

	_, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("z")})
	require.Error(t, err)
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int64(1), pe.ID)
	assert.Equal(t, 1, ns.gets, "recovery is capped at one cycle")
	assert.Len(t, ns.ifMatches, 6, "3 encodings per logical attempt, 2 attempts")
}

func TestUpdateNote_refetchFailureSurfacesOriginalError(t *testing.T) {
	// the refetch itself blows up: the original precondition error wins,
	// the refresh failure is discarded.
	ns := &noteServer{
		t:      t,
		note:   Note{ID: 1, ETag: "t1"},
		accept: func(string) bool { return false },
	}
	mux := http.NewServeMux()
	mux.Handle("PUT /", ns.handler())
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	cl := testClient(t, mux)

	_, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("z")})
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe, "refresh failure must not mask the precondition error")
	assert.Len(t, ns.ifMatches, 3, "no second attempt when the refetch fails")
}

func TestUpdateNote_otherErrorAbortsEncodingLoop(t *testing.T) {
	// a non-412 failure aborts immediately: no further encodings, no
	// recovery.
	var puts int
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		puts++
		w.WriteHeader(http.StatusInternalServerError)
	})
	cl := testClient(t, h)

	_, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("z")})
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, 1, puts)
}

func TestUpdateNote_authErrorNotRetried(t *testing.T) {
	var puts int
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		puts++
		w.WriteHeader(http.StatusUnauthorized)
	})
	cl := testClient(t, h)

	_, err := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{Content: strptr("z")})
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 1, puts)
}

// TestUpdateNote_scenario walks the end to end optimistic concurrency
// scenario: create, update with the fresh tag, then update again with the
// now stale tag and watch the recovery apply it against the current
// revision.
func TestUpdateNote_scenario(t *testing.T) {
	ns := &noteServer{
		t:    t,
		note: Note{ID: 7, Title: "A", Content: "x", Category: "c", ETag: "T0"},
	}
	ns.accept = func(im string) bool { return im == ns.note.ETag }

	mux := http.NewServeMux()
	mux.Handle("/", ns.handler())
	cl := testClient(t, mux)

	n1, err := cl.UpdateNote(t.Context(), 7, "T0", NotePatch{Content: strptr("y")})
	require.NoError(t, err)
	assert.Equal(t, "y", n1.Content)
	t1 := n1.ETag
	assert.NotEqual(t, "T0", t1)

	// stale update: T0 no longer matches, the coordinator refetches and
	// applies against t1.
	n2, err := cl.UpdateNote(t.Context(), 7, "T0", NotePatch{Content: strptr("z")})
	require.NoError(t, err)
	assert.Equal(t, "z", n2.Content)
	assert.NotEqual(t, t1, n2.ETag)
}

func TestAppendToNote(t *testing.T) {
	ns := &noteServer{
		t:    t,
		note: Note{ID: 3, Content: "line1", ETag: "t0"},
	}
	ns.accept = func(im string) bool { return im == ns.note.ETag }
	cl := testClient(t, ns.handler())

	n, err := cl.AppendToNote(t.Context(), 3, "line2")
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", n.Content)
}

func TestAppendToNote_notFound(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	cl := testClient(t, h)

	_, err := cl.AppendToNote(t.Context(), 404, "text")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNote_transportError(t *testing.T) {
	cl, err := New("http://127.0.0.1:1", "alice", "secret")
	require.NoError(t, err)

	_, uerr := cl.UpdateNote(t.Context(), 1, "t0", NotePatch{})
	var te *TransportError
	require.ErrorAs(t, uerr, &te)
	assert.Contains(t, fmt.Sprint(te), "transport error")
}
