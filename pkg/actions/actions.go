// Package actions implements the mutation orchestrators: each takes a
// user intent, applies the optimistic edit where one is safe, confirms it
// against the server, and resolves every outcome to a user-visible
// message. No failure escapes to the caller unreported.
package actions

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/listing"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// Notifier is the toast sink orchestrators report through.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

// Actions wires the orchestrators to the API, the listing store and the
// notifier.
type Actions struct {
	api    *api.Client
	store  *listing.Store
	notify Notifier
	crumbs *PathCache
}

// New creates the orchestrator set.
func New(client *api.Client, store *listing.Store, notify Notifier) *Actions {
	return &Actions{
		api:    client,
		store:  store,
		notify: notify,
		crumbs: NewPathCache(client),
	}
}

// Breadcrumbs returns the folder-path cache shared by the orchestrators.
func (a *Actions) Breadcrumbs() *PathCache {
	return a.crumbs
}

// DefaultFolderName is the name a newly created folder carries until the
// inline rename commits something else.
const DefaultFolderName = "New folder"

// InlineRename is the sub-state entered right after a folder is created:
// the row exists on the server under the default name and the UI is
// editing it in place. Creation and naming are decoupled; cancelling the
// rename keeps the folder with its default name.
type InlineRename struct {
	a      *Actions
	folder int64
	name   string
	done   bool
}

// FolderID returns the created folder's server id.
func (r *InlineRename) FolderID() int64 {
	return r.folder
}

// Commit sends the typed name as a rename (blur/Enter). An empty or
// unchanged name commits nothing.
func (r *InlineRename) Commit(ctx context.Context, name string) {
	if r.done {
		return
	}
	r.done = true

	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == r.name {
		return
	}
	r.a.RenameFolder(ctx, r.folder, trimmed)
}

// Cancel leaves the folder under its default name (Escape). The creation
// itself is not undone.
func (r *InlineRename) Cancel() {
	r.done = true
}

// CreateFolder creates a folder in the current context under the default
// name, inserts the server row at the top of the listing, and returns the
// inline-rename handle. State machine: the insert is already confirmed
// (the create response is authoritative); only the naming is pending.
func (a *Actions) CreateFolder(ctx context.Context) (*InlineRename, error) {
	view := a.store.View()

	folder, err := a.api.CreateFolder(ctx, DefaultFolderName, view.ParentID)
	if err != nil {
		a.notify.Error(transport.Message(err))
		return nil, err
	}

	tok := a.store.InsertFolderTop(*folder)
	a.store.Discard(tok)

	return &InlineRename{a: a, folder: folder.ID, name: folder.Name}, nil
}

// RenameFolder renames a folder optimistically, rolling back when the
// server rejects it. A confirmed rename invalidates cached breadcrumb
// paths, since the name may appear in ancestor chains.
func (a *Actions) RenameFolder(ctx context.Context, id int64, name string) {
	tok, ok := a.store.SetFolderName(id, name)

	if err := a.api.RenameFolder(ctx, id, name); err != nil {
		if ok {
			a.store.Rollback(tok)
		}
		a.notify.Error(transport.Message(err))
		return
	}

	if ok {
		a.store.Discard(tok)
	}
	a.crumbs.InvalidateAll()
	a.notify.Success("Folder renamed.")
}

// RenameFile renames a file optimistically, rolling back on rejection.
func (a *Actions) RenameFile(ctx context.Context, id int64, name string) {
	tok, ok := a.store.SetFileName(id, name)

	if err := a.api.RenameFile(ctx, id, name); err != nil {
		if ok {
			a.store.Rollback(tok)
		}
		a.notify.Error(transport.Message(err))
		return
	}

	if ok {
		a.store.Discard(tok)
	}
	a.notify.Success("File renamed.")
}

// DeleteFile deletes a file. Deletion is irreversible, so the row is
// removed only after the server confirms; the confirmation dialog before
// this call is the caller's concern.
func (a *Actions) DeleteFile(ctx context.Context, id int64) {
	if err := a.api.DeleteFile(ctx, id); err != nil {
		a.notify.Error(transport.Message(err))
		return
	}
	a.store.RemoveFileRow(id)
	a.notify.Success("File deleted.")
}

// DeleteFolder deletes a single folder, removing the row after the server
// confirms.
func (a *Actions) DeleteFolder(ctx context.Context, id int64) {
	if err := a.api.DeleteFolder(ctx, id); err != nil {
		a.notify.Error(transport.Message(err))
		return
	}
	a.store.RemoveFolderRow(id)
	a.notify.Success("Folder deleted.")
}

// DeleteFolderTree recursively deletes a folder. The server reports how
// much it deleted; the client displays those totals and refreshes.
func (a *Actions) DeleteFolderTree(ctx context.Context, id int64) {
	resp, err := a.api.DeleteFolderTree(ctx, id)
	if err != nil {
		a.notify.Error(transport.Message(err))
		return
	}

	a.notify.Success(fmt.Sprintf("Deleted %d file(s) and %d folder(s).",
		resp.DeletedFiles, resp.DeletedFolders))
	if err := a.store.Reload(ctx); err != nil {
		a.notify.Error(transport.Message(err))
	}
}

// DeleteAllItems bulk-deletes the contents of the current folder (or the
// root). Whether non-empty subfolders are skipped is server policy; the
// client only reports the returned counts.
func (a *Actions) DeleteAllItems(ctx context.Context) {
	view := a.store.View()

	resp, err := a.api.DeleteAllItems(ctx, view.FolderID)
	if err != nil {
		a.notify.Error(transport.Message(err))
		return
	}

	a.notify.Success(fmt.Sprintf("Deleted %d file(s) and %d folder(s).",
		resp.DeletedFiles, resp.DeletedFolders))
	if err := a.store.Reload(ctx); err != nil {
		a.notify.Error(transport.Message(err))
	}
}

// Upload sends a new file into the current folder. No optimistic row is
// added: size, checksum and version are server-derived, so the listing is
// refreshed from the server after success. On failure (including a
// timeout) the listing is untouched and the true outcome is unknown until
// a manual refresh.
func (a *Actions) Upload(ctx context.Context, filename string, content io.Reader) {
	view := a.store.View()

	if _, err := a.api.Upload(ctx, view.FolderID, filename, content); err != nil {
		a.notify.Error(transport.Message(err))
		return
	}

	a.notify.Success("File uploaded.")
	if err := a.store.Reload(ctx); err != nil {
		a.notify.Error(transport.Message(err))
	}
}

// UploadNewVersion sends a new version of an existing file, then refreshes.
func (a *Actions) UploadNewVersion(ctx context.Context, fileID int64, filename string, content io.Reader) {
	if _, err := a.api.UploadVersion(ctx, fileID, filename, content); err != nil {
		a.notify.Error(transport.Message(err))
		return
	}

	a.notify.Success("New version uploaded.")
	if err := a.store.Reload(ctx); err != nil {
		a.notify.Error(transport.Message(err))
	}
}

// Share grants the recipients access at the given role. The server may
// accept a subset; the skip list is surfaced verbatim, without inferring
// reasons.
func (a *Actions) Share(ctx context.Context, fileID int64, userIDs []int64, role string) {
	resp, err := a.api.ShareFile(ctx, fileID, userIDs, role)
	if err != nil {
		a.notify.Error(transport.Message(err))
		return
	}

	a.notify.Success(fmt.Sprintf("Shared with %d user(s).", resp.CountShared))
	if resp.CountSkipped > 0 {
		ids := make([]string, 0, len(resp.Skipped))
		for _, sk := range resp.Skipped {
			ids = append(ids, strconv.FormatInt(sk.UserID, 10))
		}
		a.notify.Warning("Skipped: " + strings.Join(ids, ", "))
	}
}

// RemoveFromShared drops the user's own access to a shared file. The row
// disappears optimistically and comes back if the server refuses.
func (a *Actions) RemoveFromShared(ctx context.Context, fileID int64) {
	tok, ok := a.store.RemoveFileRow(fileID)

	if err := a.api.RemoveFromShared(ctx, fileID); err != nil {
		if ok {
			a.store.Rollback(tok)
		}
		a.notify.Error(transport.Message(err))
		return
	}

	if ok {
		a.store.Discard(tok)
	}
	a.notify.Success("Removed from shared.")
}
