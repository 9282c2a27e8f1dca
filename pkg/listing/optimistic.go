package listing

import (
	"github.com/google/uuid"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// Optimistic edits mutate the listing before server confirmation. Each
// returns a Token capturing the inverse; Rollback applies it when the
// server rejects the mutation. Tokens die with the next full Load.

func (s *Store) newToken(undo func()) Token {
	tok := Token(uuid.NewString())
	s.pending[tok] = undo
	return tok
}

// Rollback restores the state captured by tok. Returns false when the
// token is unknown or already spent (e.g. a Load replaced the listing).
func (s *Store) Rollback(tok Token) bool {
	s.mu.Lock()
	undo, ok := s.pending[tok]
	if ok {
		delete(s.pending, tok)
		undo()
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
	return ok
}

// Discard forgets a token without applying it (mutation confirmed).
func (s *Store) Discard(tok Token) {
	s.mu.Lock()
	delete(s.pending, tok)
	s.mu.Unlock()
}

// InsertFolderTop places a row at the top of the folder listing.
func (s *Store) InsertFolderTop(f protocol.FolderSummary) Token {
	s.mu.Lock()
	s.folders = append([]protocol.FolderSummary{f}, s.folders...)
	id := f.ID
	tok := s.newToken(func() {
		s.removeFolderLocked(id)
	})
	s.mu.Unlock()

	s.notify()
	return tok
}

// SetFolderName renames a folder row. Returns false when the row is not
// in the current listing.
func (s *Store) SetFolderName(id int64, name string) (Token, bool) {
	s.mu.Lock()
	idx := s.folderIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	prior := s.folders[idx].Name
	s.folders[idx].Name = name
	tok := s.newToken(func() {
		if i := s.folderIndex(id); i >= 0 {
			s.folders[i].Name = prior
		}
	})
	s.mu.Unlock()

	s.notify()
	return tok, true
}

// RemoveFolderRow removes a folder row, remembering its position.
func (s *Store) RemoveFolderRow(id int64) (Token, bool) {
	s.mu.Lock()
	idx := s.folderIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	row := s.folders[idx]
	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)
	tok := s.newToken(func() {
		s.insertFolderAtLocked(idx, row)
	})
	s.mu.Unlock()

	s.notify()
	return tok, true
}

// SetFileName renames a file row.
func (s *Store) SetFileName(id int64, name string) (Token, bool) {
	s.mu.Lock()
	idx := s.fileIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	prior := s.files[idx].Name
	s.files[idx].Name = name
	tok := s.newToken(func() {
		if i := s.fileIndex(id); i >= 0 {
			s.files[i].Name = prior
		}
	})
	s.mu.Unlock()

	s.notify()
	return tok, true
}

// RemoveFileRow removes a file row, remembering its position.
func (s *Store) RemoveFileRow(id int64) (Token, bool) {
	s.mu.Lock()
	idx := s.fileIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	row := s.files[idx]
	s.files = append(s.files[:idx], s.files[idx+1:]...)
	tok := s.newToken(func() {
		s.insertFileAtLocked(idx, row)
	})
	s.mu.Unlock()

	s.notify()
	return tok, true
}

// ReconcileFolder replaces a placeholder row with the authoritative
// server row (real id, timestamps). Used when an optimistic insert ran
// ahead of the create response.
func (s *Store) ReconcileFolder(placeholderID int64, row protocol.FolderSummary) bool {
	s.mu.Lock()
	idx := s.folderIndex(placeholderID)
	if idx >= 0 {
		s.folders[idx] = row
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notify()
	}
	return idx >= 0
}

// Locked helpers. Callers hold s.mu.

func (s *Store) folderIndex(id int64) int {
	for i := range s.folders {
		if s.folders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fileIndex(id int64) int {
	for i := range s.files {
		if s.files[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeFolderLocked(id int64) {
	if i := s.folderIndex(id); i >= 0 {
		s.folders = append(s.folders[:i], s.folders[i+1:]...)
	}
}

func (s *Store) insertFolderAtLocked(idx int, row protocol.FolderSummary) {
	if idx > len(s.folders) {
		idx = len(s.folders)
	}
	s.folders = append(s.folders[:idx], append([]protocol.FolderSummary{row}, s.folders[idx:]...)...)
}

func (s *Store) insertFileAtLocked(idx int, row protocol.FileSummary) {
	if idx > len(s.files) {
		idx = len(s.files)
	}
	s.files = append(s.files[:idx], append([]protocol.FileSummary{row}, s.files[idx:]...)...)
}
