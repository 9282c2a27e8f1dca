package actions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/listing"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
	"github.com/clouddrive/clouddrive-client/pkg/session"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// recorder captures toast output for assertions.
type recorder struct {
	successes []string
	errors    []string
	warnings  []string
	infos     []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recorder) Warning(msg string) { r.warnings = append(r.warnings, msg) }
func (r *recorder) Info(msg string)    { r.infos = append(r.infos, msg) }

func testActions(t *testing.T, handler http.Handler) (*Actions, *listing.Store, *recorder) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := api.New(transport.New(transport.Config{
		BaseURL: ts.URL,
		Session: session.NewStore(),
	}))
	store := listing.NewStore(client, 10)
	rec := &recorder{}
	return New(client, store, rec), store, rec
}

// listingHandler serves a fixed root listing plus mutation routes.
func listingHandler(t *testing.T, folders []protocol.FolderSummary, files []protocol.FileSummary,
	mutations http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			json.NewEncoder(w).Encode(folders)
		case "/files/all":
			json.NewEncoder(w).Encode(files)
		default:
			if mutations == nil {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				http.NotFound(w, r)
				return
			}
			mutations(w, r)
		}
	}
}

func TestCreateFolder_ThenInlineRenameCommit(t *testing.T) {
	var createBody, renameBody string
	var renamePath string

	a, store, rec := testActions(t, listingHandler(t, nil, nil,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost && r.URL.Path == "/folders/create":
				b, _ := io.ReadAll(r.Body)
				createBody = string(b)
				json.NewEncoder(w).Encode(protocol.FolderSummary{ID: 5, Name: "New folder"})
			case r.Method == http.MethodPatch:
				renamePath = r.URL.Path
				b, _ := io.ReadAll(r.Body)
				renameBody = string(b)
				w.Write([]byte("{}"))
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	rename, err := a.CreateFolder(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(createBody, `"name":"New folder"`) {
		t.Errorf("expected default name in create body, got %s", createBody)
	}
	if rename.FolderID() != 5 {
		t.Errorf("expected folder id 5, got %d", rename.FolderID())
	}

	// The server row is already in the listing, on top.
	folders := store.Folders()
	if len(folders) != 1 || folders[0].ID != 5 || folders[0].Name != "New folder" {
		t.Fatalf("expected the created row on top, got %+v", folders)
	}

	rename.Commit(ctx, "Reports")
	if renamePath != "/folders/5/rename" {
		t.Errorf("unexpected rename path %q", renamePath)
	}
	if !strings.Contains(renameBody, `"name":"Reports"`) {
		t.Errorf("expected the typed name in the rename body, got %s", renameBody)
	}
	if len(rec.successes) == 0 || rec.successes[len(rec.successes)-1] != "Folder renamed." {
		t.Errorf("expected a rename toast, got %v", rec.successes)
	}
}

func TestInlineRename_EmptyOrUnchangedCommitsNothing(t *testing.T) {
	var patches int
	a, store, _ := testActions(t, listingHandler(t, nil, nil,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost:
				json.NewEncoder(w).Encode(protocol.FolderSummary{ID: 5, Name: "New folder"})
			case r.Method == http.MethodPatch:
				patches++
				w.Write([]byte("{}"))
			}
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	r1, _ := a.CreateFolder(ctx)
	r1.Commit(ctx, "   ")

	r2, _ := a.CreateFolder(ctx)
	r2.Commit(ctx, "New folder")

	r3, _ := a.CreateFolder(ctx)
	r3.Cancel()
	r3.Commit(ctx, "after cancel")

	if patches != 0 {
		t.Errorf("expected no rename requests, got %d", patches)
	}
}

func TestRenameFolder_RollbackOnFailure(t *testing.T) {
	a, store, rec := testActions(t, listingHandler(t,
		[]protocol.FolderSummary{{ID: 1, Name: "Old"}}, nil,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, `{"detail":"Name already taken"}`)
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.RenameFolder(ctx, 1, "Taken")

	if got := store.Folders()[0].Name; got != "Old" {
		t.Errorf("expected rollback to the old name, got %q", got)
	}
	if len(rec.errors) != 1 || rec.errors[0] != "Name already taken" {
		t.Errorf("expected the server message as toast, got %v", rec.errors)
	}
}

func TestRenameFile_Success(t *testing.T) {
	a, store, rec := testActions(t, listingHandler(t, nil,
		[]protocol.FileSummary{{ID: 3, Name: "old.txt"}},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{}"))
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.RenameFile(ctx, 3, "new.txt")

	if got := store.Files()[0].Name; got != "new.txt" {
		t.Errorf("expected new name, got %q", got)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "File renamed." {
		t.Errorf("unexpected toasts %v", rec.successes)
	}
}

func TestDeleteFile_RowRemovedOnlyAfterConfirmation(t *testing.T) {
	fail := true
	a, store, rec := testActions(t, listingHandler(t, nil,
		[]protocol.FileSummary{{ID: 3, Name: "doc.txt"}},
		func(w http.ResponseWriter, r *http.Request) {
			if fail {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"detail":"File not found"}`)
				return
			}
			w.Write([]byte("{}"))
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.DeleteFile(ctx, 3)
	if len(store.Files()) != 1 {
		t.Error("row must stay when the server rejects the delete")
	}
	if len(rec.errors) != 1 {
		t.Errorf("expected one error toast, got %v", rec.errors)
	}

	fail = false
	a.DeleteFile(ctx, 3)
	if len(store.Files()) != 0 {
		t.Error("row must go after the server confirms")
	}
	if len(rec.successes) != 1 || rec.successes[0] != "File deleted." {
		t.Errorf("unexpected toasts %v", rec.successes)
	}
}

func TestDeleteFolderTree_ReportsCountsAndReloads(t *testing.T) {
	var reloads int
	a, store, rec := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/all":
			reloads++
			json.NewEncoder(w).Encode([]protocol.FolderSummary{})
		case "/files/all":
			json.NewEncoder(w).Encode([]protocol.FileSummary{})
		case "/folders/9/delete-tree":
			json.NewEncoder(w).Encode(protocol.DeleteTreeResponse{DeletedFiles: 3, DeletedFolders: 2})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}
	reloads = 0

	a.DeleteFolderTree(ctx, 9)

	if len(rec.successes) != 1 || rec.successes[0] != "Deleted 3 file(s) and 2 folder(s)." {
		t.Errorf("unexpected toasts %v", rec.successes)
	}
	if reloads != 1 {
		t.Errorf("expected a reload after tree delete, got %d", reloads)
	}
}

func TestUpload_FailureLeavesListingUntouched(t *testing.T) {
	a, store, rec := testActions(t, listingHandler(t, nil,
		[]protocol.FileSummary{{ID: 1, Name: "existing.txt"}},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"detail":"disk full"}`)
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.Upload(ctx, "new.txt", strings.NewReader("data"))

	files := store.Files()
	if len(files) != 1 || files[0].Name != "existing.txt" {
		t.Errorf("listing must be untouched after a failed upload, got %+v", files)
	}
	if len(rec.errors) != 1 {
		t.Errorf("expected one error toast, got %v", rec.errors)
	}
	if len(rec.successes) != 0 {
		t.Errorf("expected no success toast, got %v", rec.successes)
	}
}

func TestShare_ReportsSkipped(t *testing.T) {
	var shareBody string
	a, store, rec := testActions(t, listingHandler(t, nil, nil,
		func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			shareBody = string(b)
			json.NewEncoder(w).Encode(protocol.ShareResponse{
				CountShared:  1,
				CountSkipped: 1,
				Skipped:      []protocol.SkippedShare{{UserID: 6, Reason: "already shared"}},
			})
		}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.DriveRoot()); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.Share(ctx, 4, []int64{5, 6}, "read")

	if !strings.Contains(shareBody, `"user_ids":[5,6]`) || !strings.Contains(shareBody, `"role":"read"`) {
		t.Errorf("unexpected share body %s", shareBody)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "Shared with 1 user(s)." {
		t.Errorf("unexpected success toasts %v", rec.successes)
	}
	if len(rec.warnings) != 1 || rec.warnings[0] != "Skipped: 6" {
		t.Errorf("unexpected warnings %v", rec.warnings)
	}
}

func TestRemoveFromShared_RollbackOnFailure(t *testing.T) {
	a, store, rec := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/shared":
			json.NewEncoder(w).Encode([]protocol.FileSummary{{ID: 8, Name: "theirs.txt", MyRole: "read"}})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"detail":"nope"}`)
		}
	}))

	ctx := context.Background()
	if err := store.Load(ctx, listing.View{Kind: listing.KindShared}); err != nil {
		t.Fatalf("load: %v", err)
	}

	a.RemoveFromShared(ctx, 8)

	files := store.Files()
	if len(files) != 1 || files[0].ID != 8 {
		t.Errorf("expected the row back after rollback, got %+v", files)
	}
	if len(rec.errors) != 1 {
		t.Errorf("expected one error toast, got %v", rec.errors)
	}
}
