// Package api provides typed bindings for the drive backend's HTTP surface.
package api

import (
	"github.com/clouddrive/clouddrive-client/pkg/session"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// Client exposes one method per backend route, all built on the shared
// transport. It holds no listing state; that lives in pkg/listing.
type Client struct {
	t *transport.Client
}

// New creates an API client on top of a transport.
func New(t *transport.Client) *Client {
	return &Client{t: t}
}

// Transport returns the underlying transport client.
func (c *Client) Transport() *transport.Client {
	return c.t
}

// Session returns the session store behind the transport.
func (c *Client) Session() *session.Store {
	return c.t.Session()
}
