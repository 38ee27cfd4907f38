package nextcloud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_validation(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		user    string
		wantErr bool
	}{
		{name: "valid", host: "https://cloud.example.com", user: "alice"},
		{name: "trailing slash trimmed", host: "https://cloud.example.com/", user: "alice"},
		{name: "empty host", host: "", user: "alice", wantErr: true},
		{name: "empty user", host: "https://cloud.example.com", user: "", wantErr: true},
		{name: "no scheme", host: "cloud.example.com", user: "alice", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl, err := New(tt.host, tt.user, "pw")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, cl.Host(), "com/", "trailing slash must be trimmed")
		})
	}
}

func TestClient_basicAuth(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "request must carry basic auth")
		assert.Equal(t, "alice", user)
		assert.Equal(t, "secret", pass)
		_ = json.NewEncoder(w).Encode([]Note{})
	})
	cl := testClient(t, h)

	_, err := cl.Notes(t.Context())
	require.NoError(t, err)
}

func TestNotes(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, notesAPIPath+"/notes", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Note{
			{ID: 1, Title: "first", ETag: "a"},
			{ID: 2, Title: "second", ETag: "b"},
		})
	})
	cl := testClient(t, h)

	nn, err := cl.Notes(t.Context())
	require.NoError(t, err)
	require.Len(t, nn, 2)
	assert.Equal(t, "first", nn[0].Title)
}

func TestNote_errorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "404 is ErrNotFound",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name:   "401 is AuthError",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var ae *AuthError
				assert.ErrorAs(t, err, &ae)
			},
		},
		{
			name:   "403 is AuthError",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var ae *AuthError
				assert.ErrorAs(t, err, &ae)
			},
		},
		{
			name:   "500 is StatusError",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var se *StatusError
				assert.ErrorAs(t, err, &se)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			cl, err := New(srv.URL, "alice", "secret")
			require.NoError(t, err)

			_, gerr := cl.Note(t.Context(), 42)
			require.Error(t, gerr)
			tt.check(t, gerr)
		})
	}
}

func TestCreateNote(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "A", req["title"])
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Note{ID: 10, Title: req["title"], Content: req["content"], Category: req["category"], ETag: "T0"})
	})
	cl := testClient(t, h)

	n, err := cl.CreateNote(t.Context(), "A", "x", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n.ID)
	assert.NotEmpty(t, n.ETag)
}

func TestDeleteNote_successWithBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
		// some server versions echo the deleted note back.
		_ = json.NewEncoder(w).Encode(Note{ID: 42, Title: "gone"})
	})
	cl := testClient(t, h)

	require.NoError(t, cl.DeleteNote(t.Context(), 42))
}

func TestDeleteNote_idempotentFailure(t *testing.T) {
	var calls int
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	cl := testClient(t, h)

	require.NoError(t, cl.DeleteNote(t.Context(), 5))
	assert.ErrorIs(t, cl.DeleteNote(t.Context(), 5), ErrNotFound)
}

func TestSearchNotes(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Note{
			{ID: 1, Title: "Groceries", Content: "milk"},
			{ID: 2, Title: "Work", Content: "quarterly report"},
			{ID: 3, Title: "misc", Category: "groceries"},
		})
	})
	cl := testClient(t, h)

	nn, err := cl.SearchNotes(t.Context(), "grocer")
	require.NoError(t, err)
	require.Len(t, nn, 2)
	assert.Equal(t, int64(1), nn[0].ID)
	assert.Equal(t, int64(3), nn[1].ID)
}

func TestTables(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tablesAPIPath + "/tables":
			_ = json.NewEncoder(w).Encode([]Table{{ID: 1, Title: "Inventory", RowCount: 2}})
		case tablesAPIPath + "/tables/1/rows":
			assert.Equal(t, "7", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode([]TableRow{
				{ID: 1, Data: []TableRowCell{{ColumnID: 1, Value: json.RawMessage(`"widget"`)}}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	cl := testClient(t, h)

	tt, err := cl.Tables(t.Context())
	require.NoError(t, err)
	require.Len(t, tt, 1)

	rows, err := cl.TableRows(t.Context(), 1, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Data[0].ColumnID)
}
