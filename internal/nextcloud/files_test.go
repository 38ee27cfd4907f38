package nextcloud

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propfindFixture = `<?xml version="1.0"?>
<d:multistatus xmlns:d="DAV:" xmlns:oc="http://owncloud.org/ns">
  <d:response>
    <d:href>/remote.php/dav/files/alice/Documents/</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>Documents</d:displayname>
        <d:resourcetype><d:collection/></d:resourcetype>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/remote.php/dav/files/alice/Documents/todo.md</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>todo.md</d:displayname>
        <d:getcontentlength>42</d:getcontentlength>
        <d:getcontenttype>text/markdown</d:getcontenttype>
        <d:getlastmodified>Tue, 25 Aug 2026 10:00:00 GMT</d:getlastmodified>
        <d:getetag>"abc"</d:getetag>
        <d:resourcetype/>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/remote.php/dav/files/alice/Documents/sub/</d:href>
    <d:propstat>
      <d:prop>
        <d:displayname>sub</d:displayname>
        <d:resourcetype><d:collection/></d:resourcetype>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`

func TestListFolder(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PROPFIND", r.Method)
		assert.Equal(t, "1", r.Header.Get("Depth"))
		assert.Equal(t, "/remote.php/dav/files/alice/Documents", r.URL.Path)
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = w.Write([]byte(propfindFixture))
	})
	cl := testClient(t, h)

	entries, err := cl.ListFolder(t.Context(), "/Documents")
	require.NoError(t, err)
	require.Len(t, entries, 2, "the folder itself is excluded")

	assert.Equal(t, "todo.md", entries[0].Name)
	assert.Equal(t, "/Documents/todo.md", entries[0].Path)
	assert.False(t, entries[0].IsDir)
	assert.Equal(t, int64(42), entries[0].Size)
	assert.Equal(t, "abc", entries[0].ETag)
	assert.False(t, entries[0].Modified.IsZero())

	assert.Equal(t, "sub", entries[1].Name)
	assert.True(t, entries[1].IsDir)
}

func TestReadWriteDeleteFile(t *testing.T) {
	content := []byte("hello")
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/remote.php/dav/files/alice/notes.txt", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write(content)
		case http.MethodPut:
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	cl := testClient(t, h)
	ctx := t.Context()

	data, err := cl.ReadFile(ctx, "/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, content, data)

	require.NoError(t, cl.WriteFile(ctx, "notes.txt", []byte("new")))
	require.NoError(t, cl.DeleteFile(ctx, "/notes.txt"))
}

func TestReadFile_notFound(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	cl := testClient(t, h)

	_, err := cl.ReadFile(t.Context(), "/missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
