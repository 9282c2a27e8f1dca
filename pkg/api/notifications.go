package api

import (
	"context"
	"fmt"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// UnreadNotifications fetches the unread set.
func (c *Client) UnreadNotifications(ctx context.Context) ([]protocol.Notification, error) {
	var items []protocol.Notification
	if err := c.t.GetJSON(ctx, "/notifications/unread", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.t.PatchJSON(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}
