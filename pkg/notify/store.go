// Package notify maintains the unread-notification set, fed by an initial
// fetch and by the server's push channel, merged without duplication.
package notify

import (
	"context"
	"sync"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// Store holds the unread set, most recent first.
type Store struct {
	api *api.Client

	mu    sync.Mutex
	items []protocol.Notification

	onChange func()
}

// NewStore creates an empty unread set.
func NewStore(client *api.Client) *Store {
	return &Store{api: client}
}

// OnChange registers a callback fired after every change, outside the lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notifyChange() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// RefreshUnread replaces the set with the server's current unread list.
func (s *Store) RefreshUnread(ctx context.Context) error {
	items, err := s.api.UnreadNotifications(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// Push merges one pushed notification by prepending. A notification whose
// id is already present (the initial fetch raced the push) is dropped.
func (s *Store) Push(n protocol.Notification) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == n.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append([]protocol.Notification{n}, s.items...)
	s.mu.Unlock()

	s.notifyChange()
}

// Unread returns a copy of the unread set.
func (s *Store) Unread() []protocol.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// HasUnread reports whether anything is unread.
func (s *Store) HasUnread() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) > 0
}

// MarkRead removes the item locally, then confirms with the server. A
// conflict answer (already read, already gone) still counts as success,
// so calling MarkRead twice behaves like calling it once. Other failures
// restore the item and return the error.
func (s *Store) MarkRead(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := -1
	var removed protocol.Notification
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			removed = s.items[i]
			break
		}
	}
	if idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notifyChange()
	}

	err := s.api.MarkNotificationRead(ctx, id)
	if err == nil {
		return nil
	}
	if _, ok := transport.AsConflict(err); ok {
		return nil
	}

	if idx >= 0 {
		s.mu.Lock()
		s.items = append(s.items[:0:0], s.items...)
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]protocol.Notification{removed}, s.items[idx:]...)...)
		s.mu.Unlock()
		s.notifyChange()
	}
	return err
}
