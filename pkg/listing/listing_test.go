package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
	"github.com/clouddrive/clouddrive-client/pkg/session"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

func testStore(t *testing.T, handler http.Handler, pageSize int) (*Store, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	client := api.New(transport.New(transport.Config{
		BaseURL: ts.URL,
		Session: session.NewStore(),
	}))
	return NewStore(client, pageSize), ts
}

func folderPage(ids ...int64) []protocol.FolderSummary {
	out := make([]protocol.FolderSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, protocol.FolderSummary{ID: id, Name: fmt.Sprintf("folder-%d", id)})
	}
	return out
}

func TestLoad_ConcatenatesFolderPages(t *testing.T) {
	// Page size 2: two full pages then a short one.
	pages := map[string][]protocol.FolderSummary{
		"1": folderPage(1, 2),
		"2": folderPage(3, 4),
		"3": folderPage(5),
	}

	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			json.NewEncoder(w).Encode(pages[r.URL.Query().Get("page")])
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{{ID: 10, Name: "a.txt"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}), 2)
	defer ts.Close()

	if err := s.Load(context.Background(), DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	folders := s.Folders()
	if len(folders) != 5 {
		t.Fatalf("expected 5 folders, got %d", len(folders))
	}
	for i, f := range folders {
		if f.ID != int64(i+1) {
			t.Errorf("expected folder %d at index %d, got %d", i+1, i, f.ID)
		}
	}
	if files := s.Files(); len(files) != 1 || files[0].Name != "a.txt" {
		t.Errorf("unexpected files %+v", files)
	}
	if s.Loading() {
		t.Error("loading should be false after completion")
	}
}

func TestLoad_ShortFirstPageStopsPagination(t *testing.T) {
	var folderRequests int
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			folderRequests++
			json.NewEncoder(w).Encode(folderPage(1))
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	if err := s.Load(context.Background(), DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if folderRequests != 1 {
		t.Errorf("expected 1 folder request, got %d", folderRequests)
	}
}

func TestLoad_PassesParentAndFolderID(t *testing.T) {
	var gotParent, gotFolder string
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			gotParent = r.URL.Query().Get("parent_id")
			json.NewEncoder(w).Encode([]protocol.FolderSummary{})
		case "/files/all":
			gotFolder = r.URL.Query().Get("folder_id")
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	if err := s.Load(context.Background(), DriveFolder(42)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotParent != "42" {
		t.Errorf("expected parent_id=42, got %q", gotParent)
	}
	if gotFolder != "42" {
		t.Errorf("expected folder_id=42, got %q", gotFolder)
	}
}

func TestLoad_SharedViewsAreFileOnly(t *testing.T) {
	var paths []string
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode([]protocol.FileSummary{{ID: 1, Name: "s.txt", MyRole: "read"}})
	}), 10)
	defer ts.Close()

	if err := s.Load(context.Background(), View{Kind: KindShared}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/files/shared" {
		t.Errorf("unexpected requests %v", paths)
	}
	if len(s.Folders()) != 0 {
		t.Error("shared view should have no folders")
	}
	if files := s.Files(); len(files) != 1 || files[0].MyRole != "read" {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestLoad_SupersededResultIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			if r.URL.Query().Get("parent_id") == "1" {
				// First navigation: answer only after the second wins.
				close(started)
				<-release
				json.NewEncoder(w).Encode(folderPage(100))
				return
			}
			json.NewEncoder(w).Encode(folderPage(200))
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Load(context.Background(), DriveFolder(1))
	}()
	<-started

	// Second navigation completes first and becomes current.
	if err := s.Load(context.Background(), DriveFolder(2)); err != nil {
		t.Fatalf("second load: %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("superseded load should not return an error, got %v", err)
	}

	folders := s.Folders()
	if len(folders) != 1 || folders[0].ID != 200 {
		t.Errorf("expected the second navigation's rows, got %+v", folders)
	}
	if !s.View().Equal(DriveFolder(2)) {
		t.Errorf("expected view folder 2, got %+v", s.View())
	}
}

func TestLoad_SupersededErrorIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			if r.URL.Query().Get("parent_id") == "1" {
				close(started)
				<-release
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode([]protocol.FolderSummary{})
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Load(context.Background(), DriveFolder(1))
	}()
	<-started

	if err := s.Load(context.Background(), DriveFolder(2)); err != nil {
		t.Fatalf("second load: %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("superseded failure must be silent, got %v", err)
	}
}

func TestLoad_ResetsPendingEdits(t *testing.T) {
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			json.NewEncoder(w).Encode(folderPage(1))
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	if err := s.Load(context.Background(), DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}
	tok, ok := s.SetFolderName(1, "renamed")
	if !ok {
		t.Fatal("expected a rollback token")
	}

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	// The refetch is authoritative; the stale token must be a no-op.
	if s.Rollback(tok) {
		t.Error("token should be invalid after a reload")
	}
	if got := s.Folders()[0].Name; got != "folder-1" {
		t.Errorf("expected server name, got %q", got)
	}
}

func TestOnChange(t *testing.T) {
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			json.NewEncoder(w).Encode(folderPage(1))
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		}
	}), 10)
	defer ts.Close()

	changes := 0
	s.OnChange(func() { changes++ })

	if err := s.Load(context.Background(), DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if changes != 1 {
		t.Errorf("expected 1 change after load, got %d", changes)
	}

	s.SetFolderName(1, "x")
	if changes != 2 {
		t.Errorf("expected 2 changes after rename, got %d", changes)
	}
}
