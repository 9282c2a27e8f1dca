// Package listing holds the per-view directory state: the folder and file
// rows currently shown, fetched atomically and patched optimistically.
//
// The store guarantees that readers always see either the last successful
// fetch for the current view, or that fetch with uncommitted optimistic
// edits applied. Results from superseded fetches are discarded whole;
// partial merges between two fetches never happen.
package listing

import (
	"context"
	"sync"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// Kind selects which backend listing a view is bound to.
type Kind string

const (
	KindDrive      Kind = "drive"
	KindShared     Kind = "shared"
	KindSharedByMe Kind = "shared-by-me"
)

// View identifies one directory context. For drive views ParentID filters
// the subfolder listing and FolderID the file listing; navigation sets both
// to the opened folder. Shared views are flat and file-only.
type View struct {
	Kind     Kind
	ParentID *int64
	FolderID *int64
}

// DriveRoot is the root of the user's own drive.
func DriveRoot() View {
	return View{Kind: KindDrive}
}

// DriveFolder is the drive view scoped to one folder.
func DriveFolder(id int64) View {
	fid := id
	pid := id
	return View{Kind: KindDrive, ParentID: &pid, FolderID: &fid}
}

// Equal reports whether two views denote the same context.
func (v View) Equal(o View) bool {
	return v.Kind == o.Kind && eqID(v.ParentID, o.ParentID) && eqID(v.FolderID, o.FolderID)
}

func eqID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Token undoes one optimistic edit. Tokens are single-use.
type Token string

// Store is the collection cache for the active DirectoryView.
type Store struct {
	api      *api.Client
	pageSize int

	mu      sync.Mutex
	gen     uint64
	view    View
	loading bool
	folders []protocol.FolderSummary
	files   []protocol.FileSummary
	pending map[Token]func()

	onChange func()
}

// NewStore creates a store bound to an API client. pageSize must match the
// server's fixed folder page size; a short page ends pagination.
func NewStore(client *api.Client, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Store{
		api:      client,
		pageSize: pageSize,
		view:     DriveRoot(),
		pending:  make(map[Token]func()),
	}
}

// OnChange registers a callback fired after every applied state change.
// It runs outside the store's lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// View returns the current navigation context.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Loading reports whether a load for the current context is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Folders returns a copy of the folder rows.
func (s *Store) Folders() []protocol.FolderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.FolderSummary, len(s.folders))
	copy(out, s.folders)
	return out
}

// Files returns a copy of the file rows.
func (s *Store) Files() []protocol.FileSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.FileSummary, len(s.files))
	copy(out, s.files)
	return out
}

// Load fetches the listing for view and installs it atomically. It becomes
// the current context immediately, superseding any in-flight load; when a
// superseded load completes, its result (or error) is discarded rather
// than applied. The transport offers no cancellation, so staleness is an
// explicit check at completion time.
func (s *Store) Load(ctx context.Context, view View) error {
	s.mu.Lock()
	s.gen++
	myGen := s.gen
	s.view = view
	s.loading = true
	s.mu.Unlock()

	folders, files, err := s.fetch(ctx, view)

	s.mu.Lock()
	if s.gen != myGen {
		// A later navigation won; this result no longer matches the
		// active context.
		s.mu.Unlock()
		return nil
	}
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.folders = folders
	s.files = files
	s.pending = make(map[Token]func())
	s.mu.Unlock()

	s.notify()
	return nil
}

// Reload re-fetches the current context.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx, s.View())
}

func (s *Store) fetch(ctx context.Context, view View) ([]protocol.FolderSummary, []protocol.FileSummary, error) {
	switch view.Kind {
	case KindShared:
		files, err := s.api.SharedWithMe(ctx)
		return nil, files, err
	case KindSharedByMe:
		files, err := s.api.SharedByMe(ctx)
		return nil, files, err
	}

	folders, err := s.fetchAllFolderPages(ctx, view.ParentID)
	if err != nil {
		return nil, nil, err
	}
	files, err := s.api.ListFiles(ctx, view.FolderID)
	if err != nil {
		return nil, nil, err
	}
	return folders, files, nil
}

// fetchAllFolderPages concatenates folder pages until a short page.
func (s *Store) fetchAllFolderPages(ctx context.Context, parentID *int64) ([]protocol.FolderSummary, error) {
	var all []protocol.FolderSummary
	for page := 1; ; page++ {
		batch, err := s.api.ListFolders(ctx, page, parentID)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < s.pageSize {
			return all, nil
		}
	}
}
