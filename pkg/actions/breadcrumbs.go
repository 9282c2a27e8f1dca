package actions

import (
	"context"
	"sync"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// PathCache memoizes folder ancestor chains for breadcrumb display.
// Renames invalidate it wholesale: a folder's name can appear in any
// descendant's chain, and the chains are cheap to refetch.
type PathCache struct {
	api *api.Client

	mu    sync.Mutex
	paths map[int64][]protocol.PathNode
}

// NewPathCache creates an empty path cache.
func NewPathCache(client *api.Client) *PathCache {
	return &PathCache{
		api:   client,
		paths: make(map[int64][]protocol.PathNode),
	}
}

// Path returns the ancestor chain of a folder, root first, fetching it
// on first use.
func (p *PathCache) Path(ctx context.Context, folderID int64) ([]protocol.PathNode, error) {
	p.mu.Lock()
	if cached, ok := p.paths[folderID]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	path, err := p.api.FolderPath(ctx, folderID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.paths[folderID] = path
	p.mu.Unlock()
	return path, nil
}

// InvalidateAll drops every cached chain.
func (p *PathCache) InvalidateAll() {
	p.mu.Lock()
	p.paths = make(map[int64][]protocol.PathNode)
	p.mu.Unlock()
}
