package storage

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anyonedrive/internal/testutil"
)

type testEntry struct {
	Kind string         `json:"kind"`
	Path string         `json:"path"`
	Item map[string]any `json:"item"`
}

func newTestEcho(t *testing.T) (*echo.Echo, *testutil.FakeOneDrive) {
	t.Helper()

	service, fake, _ := newTestService(t, nestedShare())
	e := echo.New()
	NewHandler(service).RegisterRoutes(e)
	return e, fake
}

func doGet(e *echo.Echo, target string, query url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target+"?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetFolderContents(t *testing.T) {
	e, fake := newTestEcho(t)

	rec := doGet(e, "/storage/items", url.Values{"share_url": {fake.ShareURL()}, "path": {"docs"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Folder   map[string]any `json:"folder"`
		Path     string         `json:"path"`
		Contents []testEntry    `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "docs", resp.Folder["name"])
	assert.Equal(t, "docs", resp.Path)
	require.Len(t, resp.Contents, 2)
	assert.Equal(t, "folder", resp.Contents[0].Kind)
	assert.Equal(t, "docs/drafts", resp.Contents[0].Path)
	assert.Equal(t, "file", resp.Contents[1].Kind)
	assert.Equal(t, "docs/b.txt", resp.Contents[1].Path)
	assert.EqualValues(t, 1, resp.Contents[1].Item["size"])
	assert.NotContains(t, resp.Contents[0].Item, "ShareToken")
}

func TestHandler_GetFolderContentsKindFilter(t *testing.T) {
	e, fake := newTestEcho(t)

	rec := doGet(e, "/storage/items", url.Values{"share_url": {fake.ShareURL()}, "kind": {"folders"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Contents []testEntry `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Contents, 2)
	assert.Equal(t, "docs", resp.Contents[0].Path)
	assert.Equal(t, "empty", resp.Contents[1].Path)

	rec = doGet(e, "/storage/items", url.Values{"share_url": {fake.ShareURL()}, "kind": {"photos"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetTree(t *testing.T) {
	e, fake := newTestEcho(t)

	rec := doGet(e, "/storage/tree", url.Values{"share_url": {fake.ShareURL()}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []testEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	paths := make([]string, 0, len(resp.Entries))
	for _, entry := range resp.Entries {
		paths = append(paths, entry.Path)
	}
	assert.Equal(t, []string{"docs", "docs/drafts", "docs/drafts/a.md", "docs/b.txt", "empty", "c.txt"}, paths)
}

func TestHandler_Errors(t *testing.T) {
	e, fake := newTestEcho(t)

	tests := []struct {
		name   string
		target string
		query  url.Values
		status int
	}{
		{"missing share url", "/storage/items", url.Values{}, http.StatusBadRequest},
		{"missing share url on tree", "/storage/tree", url.Values{}, http.StatusBadRequest},
		{"relative share url", "/storage/items", url.Values{"share_url": {"f/s!abc"}}, http.StatusBadRequest},
		{"unknown path", "/storage/items", url.Values{"share_url": {fake.ShareURL()}, "path": {"nope"}}, http.StatusNotFound},
		{"path is a file", "/storage/tree", url.Values{"share_url": {fake.ShareURL()}, "path": {"c.txt"}}, http.StatusBadRequest},
		{"unknown share", "/storage/items", url.Values{"share_url": {"https://1drv.ms/f/s!gone"}}, http.StatusNotFound},
		{"not a share link", "/storage/items", url.Values{"share_url": {"https://example.com/folder"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, tt.target, tt.query)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
