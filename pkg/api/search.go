package api

import (
	"context"
	"net/url"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// Search queries the mixed file/folder index.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]protocol.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", itoa(limit))

	var results []protocol.SearchResult
	if err := c.t.GetJSON(ctx, "/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}
	return results, nil
}
