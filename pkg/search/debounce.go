// Package search implements debounced search-as-you-type against the
// backend's mixed file/folder index.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// Result carries one delivered lookup. Query echoes what was searched so
// the consumer can drop results for text it has since moved past.
type Result struct {
	Query string
	Items []protocol.SearchResult
	Err   error
}

// Debouncer schedules a lookup a fixed quiet period after each keystroke.
// A new Schedule supersedes (not queues behind) the previous one: only the
// lookup for the latest query runs, and a lookup that was superseded while
// in flight is not delivered.
type Debouncer struct {
	api     *api.Client
	delay   time.Duration
	limit   int
	deliver func(Result)

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New creates a debouncer. deliver is called from the lookup goroutine.
func New(client *api.Client, delay time.Duration, limit int, deliver func(Result)) *Debouncer {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		api:     client,
		delay:   delay,
		limit:   limit,
		deliver: deliver,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Schedule arms a lookup for query after the quiet period, disarming any
// pending one. An empty query delivers an empty result immediately.
func (d *Debouncer) Schedule(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	d.gen++
	myGen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if query == "" {
		d.mu.Unlock()
		d.deliver(Result{Query: ""})
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.lookup(myGen, query)
	})
	d.mu.Unlock()
}

func (d *Debouncer) lookup(myGen uint64, query string) {
	if d.ctx.Err() != nil {
		return
	}

	items, err := d.api.Search(d.ctx, query, d.limit)

	d.mu.Lock()
	stale := d.gen != myGen
	d.mu.Unlock()
	if stale || d.ctx.Err() != nil {
		return
	}

	d.deliver(Result{Query: query, Items: items, Err: err})
}

// Close cancels any pending lookup; nothing is delivered afterwards.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.cancel()
}
