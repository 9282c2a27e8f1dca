// Package protocol defines the drive backend's request/response types.
package protocol

import (
	"encoding/json"
	"time"
)

// TokenResponse is returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo describes a user, returned by GET /users/me and /users/search.
type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// FolderSummary is one row of GET /folders/all. ParentID is nil at root.
type FolderSummary struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	ParentID  *int64     `json:"parent_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// FileSummary is one row of the file listing endpoints. MyRole is set only
// on shared views; CollaboratorCount only on shared-by-me.
type FileSummary struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	FolderID               *int64     `json:"folder_id,omitempty"`
	LatestVersionSizeBytes *int64     `json:"latest_version_size_bytes"`
	CreatedAt              *time.Time `json:"created_at,omitempty"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty"`
	LatestVersionCreatedAt *time.Time `json:"latest_version_created_at,omitempty"`
	MyRole                 string     `json:"my_role,omitempty"`
	CollaboratorCount      *int       `json:"collaborator_count,omitempty"`
}

// ModifiedAt returns the most specific timestamp available for display.
func (f *FileSummary) ModifiedAt() *time.Time {
	if f.UpdatedAt != nil {
		return f.UpdatedAt
	}
	if f.LatestVersionCreatedAt != nil {
		return f.LatestVersionCreatedAt
	}
	return f.CreatedAt
}

// CreateFolderRequest is the body for POST /folders/create.
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// RenameRequest is the body for PATCH /folders/{id}/rename and
// PATCH /files/{id}/rename.
type RenameRequest struct {
	Name string `json:"name"`
}

// PathNode is one ancestor in GET /folders/{id}/path, root first.
type PathNode struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CanDeleteResponse is returned by GET /folders/{id}/can-delete.
type CanDeleteResponse struct {
	CanDelete     bool `json:"can_delete"`
	HasFiles      bool `json:"has_files"`
	HasSubfolders bool `json:"has_subfolders"`
}

// DeleteTreeResponse is returned by DELETE /folders/{id}/delete-tree.
type DeleteTreeResponse struct {
	DeletedFiles   int `json:"deleted_files"`
	DeletedFolders int `json:"deleted_folders"`
}

// DeleteAllItemsResponse is returned by the delete-all-items endpoints.
type DeleteAllItemsResponse struct {
	DeletedFiles   int `json:"deleted_files"`
	DeletedFolders int `json:"deleted_folders"`
	SkippedFolders int `json:"skipped_folders,omitempty"`
}

// ShareRequest is the body for POST /files/{id}/share.
type ShareRequest struct {
	UserIDs []int64 `json:"user_ids"`
	Role    string  `json:"role"` // "read" or "write"
}

// SkippedShare identifies a recipient the server declined to share with.
// The reason, when present, is server-phrased; the client never infers one.
type SkippedShare struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

// ShareResponse is returned by POST /files/{id}/share.
type ShareResponse struct {
	CountShared  int            `json:"count_shared"`
	CountSkipped int            `json:"count_skipped"`
	Skipped      []SkippedShare `json:"skipped,omitempty"`
}

// ShareEntry is one row of GET /files/{id}/shares-by-me.
type ShareEntry struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}

// SearchResult is one row of GET /search. Type is "file" or "folder".
type SearchResult struct {
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	FolderID *int64 `json:"folder_id,omitempty"`
	MyRole   string `json:"my_role,omitempty"`
}

// Notification is one unread item, from GET /notifications/unread or push.
type Notification struct {
	ID        int64      `json:"id"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	Type      string     `json:"type,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// PushFrame is one message on the notification websocket.
type PushFrame struct {
	Event        string        `json:"event"`
	Notification *Notification `json:"notification,omitempty"`
}

// ErrorBody is the backend's error envelope. Detail is either a plain
// string or a list of field-level validation problems.
type ErrorBody struct {
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ValidationItem is one entry of a structured validation detail list.
type ValidationItem struct {
	Loc []json.RawMessage `json:"loc,omitempty"`
	Msg string            `json:"msg"`
}
