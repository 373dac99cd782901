// Package testutil provides a fake anonymous OneDrive API for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// FakeFile is a file served by the fake API
type FakeFile struct {
	Name     string
	MimeType string
	Content  []byte
	Status   int // download answers with this status when set

	id string
}

// FakeFolder is a folder served by the fake API
type FakeFolder struct {
	Name    string
	Files   []*FakeFile
	Folders []*FakeFolder

	id string
}

// FakeOneDrive serves a single share rooted at Root
type FakeOneDrive struct {
	Server     *httptest.Server
	ShareToken string
	Root       *FakeFolder

	mu       sync.Mutex
	folders  map[string]*FakeFolder
	files    map[string]*FakeFile
	requests atomic.Int64
	created  time.Time
}

// NewFakeOneDrive starts a fake API serving root under the given share token.
// The server is closed when the test ends.
func NewFakeOneDrive(t testing.TB, shareToken string, root *FakeFolder) *FakeOneDrive {
	t.Helper()

	f := &FakeOneDrive{
		ShareToken: shareToken,
		Root:       root,
		folders:    make(map[string]*FakeFolder),
		files:      make(map[string]*FakeFile),
		created:    time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.index(root)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1.0/shares/{token}/root/children", f.handleRootChildren)
	mux.HandleFunc("GET /v1.0/shares/{token}/items/{id}/children", f.handleItemChildren)
	mux.HandleFunc("GET /content/{id}", f.handleContent)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// BaseURL is the API root to configure the client with
func (f *FakeOneDrive) BaseURL() string {
	return f.Server.URL + "/v1.0"
}

// ShareURL is the public link of the share
func (f *FakeOneDrive) ShareURL() string {
	return "https://1drv.ms/f/" + f.ShareToken + "?e=aq9M7h"
}

// Requests returns the number of requests served so far
func (f *FakeOneDrive) Requests() int64 {
	return f.requests.Load()
}

func (f *FakeOneDrive) index(folder *FakeFolder) {
	f.mu.Lock()
	folder.id = fmt.Sprintf("FOLDER!%d", len(f.folders)+1)
	f.folders[folder.id] = folder
	for _, file := range folder.Files {
		file.id = fmt.Sprintf("FILE!%d", len(f.files)+1)
		f.files[file.id] = file
	}
	f.mu.Unlock()

	for _, sub := range folder.Folders {
		f.index(sub)
	}
}

func (f *FakeOneDrive) handleRootChildren(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("token") != f.ShareToken {
		http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
		return
	}
	f.writeChildren(w, f.Root)
}

func (f *FakeOneDrive) handleItemChildren(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	folder, ok := f.folders[r.PathValue("id")]
	f.mu.Unlock()

	if r.PathValue("token") != f.ShareToken || !ok {
		http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
		return
	}
	f.writeChildren(w, folder)
}

func (f *FakeOneDrive) handleContent(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	file, ok := f.files[r.PathValue("id")]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if file.Status != 0 {
		http.Error(w, http.StatusText(file.Status), file.Status)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	_, _ = w.Write(file.Content)
}

// writeChildren renders folders first, then files, using the capitalised keys the public API uses
func (f *FakeOneDrive) writeChildren(w http.ResponseWriter, folder *FakeFolder) {
	values := make([]map[string]any, 0, len(folder.Folders)+len(folder.Files))

	for _, sub := range folder.Folders {
		values = append(values, map[string]any{
			"Id":                   sub.id,
			"Name":                 sub.Name,
			"CreatedDateTime":      f.created.Format(time.RFC3339),
			"LastModifiedDateTime": f.created.Add(time.Hour).Format(time.RFC3339),
			"Size":                 0,
			"WebUrl":               "https://onedrive.live.com/?id=" + sub.id,
			"Folder": map[string]any{
				"ChildCount": len(sub.Folders) + len(sub.Files),
			},
			"ParentReference": map[string]any{"DriveId": "drive1", "Id": folder.id},
		})
	}

	for _, file := range folder.Files {
		values = append(values, map[string]any{
			"@content.downloadUrl": f.Server.URL + "/content/" + file.id,
			"Id":                   file.id,
			"Name":                 file.Name,
			"CreatedDateTime":      f.created.Format(time.RFC3339),
			"LastModifiedDateTime": f.created.Add(2 * time.Hour).Format(time.RFC3339),
			"Size":                 len(file.Content),
			"WebUrl":               "https://onedrive.live.com/?id=" + file.id,
			"File": map[string]any{
				"MimeType": file.MimeType,
				"Hashes":   map[string]any{"Sha1Hash": "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709"},
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"@odata.count": len(values),
		"Value":        values,
	})
}

// SampleShare mirrors the public test share: one sub-folder holding five files and one top-level file.
// The first file in the sub-folder is one full 64 KiB block plus 5959 bytes.
func SampleShare() *FakeFolder {
	files := make([]*FakeFile, 0, 5)
	sizes := []int{65536 + 5959, 1024, 2048, 4096, 10}
	for i, size := range sizes {
		content := make([]byte, size)
		for j := range content {
			content[j] = byte((i + j) % 251)
		}
		files = append(files, &FakeFile{
			Name:     fmt.Sprintf("photo-%d.jpg", i+1),
			MimeType: "image/jpeg",
			Content:  content,
		})
	}

	return &FakeFolder{
		Name: "root",
		Folders: []*FakeFolder{
			{Name: "Single folder", Files: files},
		},
		Files: []*FakeFile{
			{Name: "readme.txt", MimeType: "text/plain", Content: []byte("hello from a shared folder\n")},
		},
	}
}
