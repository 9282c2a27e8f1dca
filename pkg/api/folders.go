package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// ListFolders fetches one page of GET /folders/all. parentID nil means the
// root level. Page size is fixed by the server; callers detect the end of
// the listing by a short page.
func (c *Client) ListFolders(ctx context.Context, page int, parentID *int64) ([]protocol.FolderSummary, error) {
	q := url.Values{}
	q.Set("page", itoa(page))
	if parentID != nil {
		q.Set("parent_id", strconv.FormatInt(*parentID, 10))
	}

	var folders []protocol.FolderSummary
	if err := c.t.GetJSON(ctx, "/folders/all?"+q.Encode(), &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a folder via POST /folders/create and returns the
// authoritative server row.
func (c *Client) CreateFolder(ctx context.Context, name string, parentID *int64) (*protocol.FolderSummary, error) {
	req := protocol.CreateFolderRequest{Name: name, ParentID: parentID}

	var folder protocol.FolderSummary
	if err := c.t.PostJSON(ctx, "/folders/create", req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder persists a folder rename.
func (c *Client) RenameFolder(ctx context.Context, id int64, name string) error {
	path := fmt.Sprintf("/folders/%d/rename", id)
	return c.t.PatchJSON(ctx, path, protocol.RenameRequest{Name: name}, nil)
}

// DeleteFolder deletes a single folder.
func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/folders/delete/%d", id), nil)
}

// DeleteFolderTree recursively deletes a folder and everything under it.
// The server computes the deleted counts; the client only reports them.
func (c *Client) DeleteFolderTree(ctx context.Context, id int64) (*protocol.DeleteTreeResponse, error) {
	var resp protocol.DeleteTreeResponse
	if err := c.t.Delete(ctx, fmt.Sprintf("/folders/%d/delete-tree", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAllItems bulk-deletes the contents of a folder, or of the root
// when folderID is nil. Skip policy for non-empty subfolders is entirely
// the server's.
func (c *Client) DeleteAllItems(ctx context.Context, folderID *int64) (*protocol.DeleteAllItemsResponse, error) {
	path := "/folders/delete-all-items/root"
	if folderID != nil {
		path = fmt.Sprintf("/folders/%d/delete-all-items", *folderID)
	}

	var resp protocol.DeleteAllItemsResponse
	if err := c.t.Delete(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FolderPath fetches the ancestor chain of a folder, root first.
func (c *Client) FolderPath(ctx context.Context, id int64) ([]protocol.PathNode, error) {
	var path []protocol.PathNode
	if err := c.t.GetJSON(ctx, fmt.Sprintf("/folders/%d/path", id), &path); err != nil {
		return nil, err
	}
	return path, nil
}

// CanDeleteFolder asks the server whether a folder is empty enough to
// delete without recursion. Informational only; tree delete does not
// depend on it.
func (c *Client) CanDeleteFolder(ctx context.Context, id int64) (*protocol.CanDeleteResponse, error) {
	var resp protocol.CanDeleteResponse
	if err := c.t.GetJSON(ctx, fmt.Sprintf("/folders/%d/can-delete", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
