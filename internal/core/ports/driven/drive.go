package driven

import "context"

// DriveClient performs folder/file operations against the remote storage API
// on behalf of one admin. A client is valid for the credentials it was built
// with; callers obtain one per request from the factory.
type DriveClient interface {
	// CreateFolder creates a folder under the given parent ("" for root)
	// and returns its id.
	CreateFolder(ctx context.Context, name, parentID string) (string, error)

	// FindFolder searches for a folder by exact name under a parent.
	// Returns "" when no folder matches.
	FindFolder(ctx context.Context, name, parentID string) (string, error)

	// RenameFolder renames an existing folder.
	RenameFolder(ctx context.Context, folderID, newName string) error

	// MoveFolder reparents a folder from oldParentID to newParentID.
	MoveFolder(ctx context.Context, folderID, oldParentID, newParentID string) error

	// FindFile searches for a file by exact name within a folder.
	// Returns "" when no file matches.
	FindFile(ctx context.Context, name, folderID string) (string, error)

	// UploadFile creates a file with the given content and returns its id.
	UploadFile(ctx context.Context, name, folderID, mimeType string, data []byte) (string, error)

	// UpdateFileContent replaces the content of an existing file.
	UpdateFileContent(ctx context.Context, fileID, mimeType string, data []byte) error

	// DeleteFile deletes a file by id.
	DeleteFile(ctx context.Context, fileID string) error
}

// DriveClientFactory builds per-request Drive clients from stored credentials.
type DriveClientFactory interface {
	// ForRefreshToken builds a client that mints access tokens from the
	// admin's long-lived refresh token.
	ForRefreshToken(ctx context.Context, refreshToken string) (DriveClient, error)

	// ForAccessToken builds a client from a short-lived access token, used
	// during finalize before any refresh token is persisted.
	ForAccessToken(ctx context.Context, accessToken string) (DriveClient, error)
}
