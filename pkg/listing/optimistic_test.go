package listing

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

func loadedStore(t *testing.T, folders []protocol.FolderSummary, files []protocol.FileSummary) *Store {
	t.Helper()
	s, ts := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			json.NewEncoder(w).Encode(folders)
		case "/files/all":
			json.NewEncoder(w).Encode(files)
		}
	}), 10)
	t.Cleanup(ts.Close)

	if err := s.Load(context.Background(), DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestSetFolderName_Rollback(t *testing.T) {
	s := loadedStore(t, folderPage(1, 2), nil)

	tok, ok := s.SetFolderName(2, "renamed")
	if !ok {
		t.Fatal("expected a token")
	}
	if got := s.Folders()[1].Name; got != "renamed" {
		t.Errorf("expected optimistic name, got %q", got)
	}

	if !s.Rollback(tok) {
		t.Fatal("rollback failed")
	}
	if got := s.Folders()[1].Name; got != "folder-2" {
		t.Errorf("expected prior name after rollback, got %q", got)
	}

	// A token is single-use.
	if s.Rollback(tok) {
		t.Error("second rollback should fail")
	}
}

func TestSetFolderName_MissingRow(t *testing.T) {
	s := loadedStore(t, folderPage(1), nil)
	if _, ok := s.SetFolderName(99, "x"); ok {
		t.Error("expected no token for an unknown row")
	}
}

func TestInsertFolderTop_Rollback(t *testing.T) {
	s := loadedStore(t, folderPage(1, 2), nil)

	tok := s.InsertFolderTop(protocol.FolderSummary{ID: 3, Name: "New folder"})
	folders := s.Folders()
	if len(folders) != 3 || folders[0].ID != 3 {
		t.Fatalf("expected new row on top, got %+v", folders)
	}

	s.Rollback(tok)
	folders = s.Folders()
	if len(folders) != 2 || folders[0].ID != 1 {
		t.Errorf("expected original listing after rollback, got %+v", folders)
	}
}

func TestRemoveFileRow_RollbackRestoresPosition(t *testing.T) {
	files := []protocol.FileSummary{
		{ID: 1, Name: "a.txt"},
		{ID: 2, Name: "b.txt"},
		{ID: 3, Name: "c.txt"},
	}
	s := loadedStore(t, nil, files)

	tok, ok := s.RemoveFileRow(2)
	if !ok {
		t.Fatal("expected a token")
	}
	if got := s.Files(); len(got) != 2 {
		t.Fatalf("expected 2 files, got %+v", got)
	}

	s.Rollback(tok)
	got := s.Files()
	if len(got) != 3 || got[1].ID != 2 {
		t.Errorf("expected b.txt back at index 1, got %+v", got)
	}
}

func TestRemoveFolderRow_Rollback(t *testing.T) {
	s := loadedStore(t, folderPage(1, 2, 3), nil)

	tok, _ := s.RemoveFolderRow(1)
	if got := s.Folders(); got[0].ID != 2 {
		t.Fatalf("expected folder 2 first, got %+v", got)
	}

	s.Rollback(tok)
	if got := s.Folders(); len(got) != 3 || got[0].ID != 1 {
		t.Errorf("expected folder 1 restored first, got %+v", got)
	}
}

func TestDiscardMakesTokenInert(t *testing.T) {
	s := loadedStore(t, folderPage(1), nil)

	tok, _ := s.SetFolderName(1, "confirmed")
	s.Discard(tok)

	if s.Rollback(tok) {
		t.Error("discarded token should not roll back")
	}
	if got := s.Folders()[0].Name; got != "confirmed" {
		t.Errorf("expected the confirmed name to stick, got %q", got)
	}
}

func TestReconcileFolder(t *testing.T) {
	s := loadedStore(t, folderPage(1), nil)

	s.InsertFolderTop(protocol.FolderSummary{ID: -1, Name: "New folder"})
	if !s.ReconcileFolder(-1, protocol.FolderSummary{ID: 7, Name: "New folder"}) {
		t.Fatal("expected reconcile to find the placeholder")
	}

	folders := s.Folders()
	if folders[0].ID != 7 {
		t.Errorf("expected server id 7, got %d", folders[0].ID)
	}

	if s.ReconcileFolder(-1, protocol.FolderSummary{ID: 8}) {
		t.Error("reconciling a missing placeholder should fail")
	}
}
