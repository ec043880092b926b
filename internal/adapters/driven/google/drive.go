package google

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure interface compliance.
var (
	_ driven.DriveClient        = (*driveClient)(nil)
	_ driven.DriveClientFactory = (*DriveClientFactory)(nil)
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveClientFactory builds per-request Drive clients from stored
// credentials. Clients are cheap; nothing is cached across requests.
type DriveClientFactory struct {
	cfg OAuthBrokerConfig
}

// NewDriveClientFactory creates a factory using the same OAuth app
// credentials as the broker.
func NewDriveClientFactory(cfg OAuthBrokerConfig) *DriveClientFactory {
	return &DriveClientFactory{cfg: cfg}
}

// ForRefreshToken builds a client whose token source mints access tokens
// from the admin's long-lived refresh token.
func (f *DriveClientFactory) ForRefreshToken(ctx context.Context, refreshToken string) (driven.DriveClient, error) {
	config := &oauth2.Config{
		ClientID:     f.cfg.ClientID,
		ClientSecret: f.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
	source := config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return newDriveClient(ctx, option.WithTokenSource(source))
}

// ForAccessToken builds a client from a short-lived access token, used
// during finalize before any refresh token is persisted.
func (f *DriveClientFactory) ForAccessToken(ctx context.Context, accessToken string) (driven.DriveClient, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return newDriveClient(ctx, option.WithTokenSource(source))
}

func newDriveClient(ctx context.Context, opts ...option.ClientOption) (driven.DriveClient, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &driveClient{service: service}, nil
}

// driveClient implements driven.DriveClient over the Drive v3 API.
type driveClient struct {
	service *drive.Service
}

func (c *driveClient) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	folder := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}

	created, err := c.service.Files.Create(folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return created.Id, nil
}

func (c *driveClient) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQuery(parentID))
	}

	list, err := c.service.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find folder %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (c *driveClient) RenameFolder(ctx context.Context, folderID, newName string) error {
	_, err := c.service.Files.Update(folderID, &drive.File{Name: newName}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("rename folder %s: %w", folderID, err)
	}
	return nil
}

func (c *driveClient) MoveFolder(ctx context.Context, folderID, oldParentID, newParentID string) error {
	_, err := c.service.Files.Update(folderID, nil).
		AddParents(newParentID).
		RemoveParents(oldParentID).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("move folder %s: %w", folderID, err)
	}
	return nil
}

func (c *driveClient) FindFile(ctx context.Context, name, folderID string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType != '%s' and trashed = false",
		escapeQuery(name), escapeQuery(folderID), folderMimeType)

	list, err := c.service.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("find file %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (c *driveClient) UploadFile(ctx context.Context, name, folderID, mimeType string, data []byte) (string, error) {
	file := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}
	created, err := c.service.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload file %q: %w", name, err)
	}
	return created.Id, nil
}

func (c *driveClient) UpdateFileContent(ctx context.Context, fileID, mimeType string, data []byte) error {
	_, err := c.service.Files.Update(fileID, nil).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update file %s: %w", fileID, err)
	}
	return nil
}

func (c *driveClient) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return nil
}

// escapeQuery escapes a value for interpolation into a Drive search query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
