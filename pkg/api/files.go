package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strconv"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// ListFiles fetches the files of a folder (nil = root) via GET /files/all.
func (c *Client) ListFiles(ctx context.Context, folderID *int64) ([]protocol.FileSummary, error) {
	path := "/files/all"
	if folderID != nil {
		q := url.Values{}
		q.Set("folder_id", strconv.FormatInt(*folderID, 10))
		path += "?" + q.Encode()
	}

	var files []protocol.FileSummary
	if err := c.t.GetJSON(ctx, path, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// SharedWithMe fetches the flat shared-with-me file listing.
func (c *Client) SharedWithMe(ctx context.Context) ([]protocol.FileSummary, error) {
	var files []protocol.FileSummary
	if err := c.t.GetJSON(ctx, "/files/shared", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// SharedByMe fetches the flat shared-by-me file listing.
func (c *Client) SharedByMe(ctx context.Context) ([]protocol.FileSummary, error) {
	var files []protocol.FileSummary
	if err := c.t.GetJSON(ctx, "/files/shared-by-me", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Download streams a file as an attachment. The returned name is taken
// from Content-Disposition when present, otherwise empty. Caller closes
// the reader.
func (c *Client) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	resp, err := c.t.GetStream(ctx, fmt.Sprintf("/files/%d/download", id))
	if err != nil {
		return nil, "", err
	}

	name := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	return resp.Body, name, nil
}

// View streams a file for inline display.
func (c *Client) View(ctx context.Context, id int64) (io.ReadCloser, error) {
	resp, err := c.t.GetStream(ctx, fmt.Sprintf("/files/%d/view", id))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Upload sends a new file as multipart (field "file") into a folder
// (nil = root) and returns the server's authoritative row. Size, checksum
// and version number are computed server-side, so no optimistic listing
// change is sensible before this returns.
func (c *Client) Upload(ctx context.Context, folderID *int64, filename string, content io.Reader) (*protocol.FileSummary, error) {
	path := "/files/upload"
	if folderID != nil {
		q := url.Values{}
		q.Set("folder_id", strconv.FormatInt(*folderID, 10))
		path += "?" + q.Encode()
	}

	var file protocol.FileSummary
	if err := c.t.PostMultipart(ctx, path, "file", filename, content, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// UploadVersion sends a new version of an existing file as multipart
// (field "upload").
func (c *Client) UploadVersion(ctx context.Context, fileID int64, filename string, content io.Reader) (*protocol.FileSummary, error) {
	var file protocol.FileSummary
	path := fmt.Sprintf("/files/%d/versions", fileID)
	if err := c.t.PostMultipart(ctx, path, "upload", filename, content, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// RenameFile persists a file rename.
func (c *Client) RenameFile(ctx context.Context, id int64, name string) error {
	path := fmt.Sprintf("/files/%d/rename", id)
	return c.t.PatchJSON(ctx, path, protocol.RenameRequest{Name: name}, nil)
}

// DeleteFile deletes a file the user owns.
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/files/%d/delete", id), nil)
}

// RemoveFromShared drops the current user's own access grant to a file
// someone else shared with them.
func (c *Client) RemoveFromShared(ctx context.Context, id int64) error {
	return c.t.Delete(ctx, fmt.Sprintf("/files/%d/remove-from-shared", id), nil)
}

// ShareFile grants one or more recipients access at the given role. The
// server may accept a subset; the response lists the skipped recipients
// with server-phrased reasons.
func (c *Client) ShareFile(ctx context.Context, id int64, userIDs []int64, role string) (*protocol.ShareResponse, error) {
	req := protocol.ShareRequest{UserIDs: userIDs, Role: role}

	var resp protocol.ShareResponse
	if err := c.t.PostJSON(ctx, fmt.Sprintf("/files/%d/share", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SharesByMe lists the people a file is shared with.
func (c *Client) SharesByMe(ctx context.Context, id int64) ([]protocol.ShareEntry, error) {
	var entries []protocol.ShareEntry
	if err := c.t.GetJSON(ctx, fmt.Sprintf("/files/%d/shares-by-me", id), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
