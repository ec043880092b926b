package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

type driveFolder struct {
	id       string
	name     string
	parentID string
}

type driveFile struct {
	id       string
	name     string
	folderID string
	mimeType string
	data     []byte
}

// MockDriveClient is an in-memory mock of DriveClient for testing
type MockDriveClient struct {
	mu      sync.Mutex
	seq     int
	folders map[string]*driveFolder
	files   map[string]*driveFile

	// CreateFolderErr forces CreateFolder to fail when set
	CreateFolderErr error

	// MoveFolderErr forces MoveFolder to fail when set
	MoveFolderErr error

	// DeleteFileErr forces DeleteFile to fail when set
	DeleteFileErr error

	// Renames records RenameFolder calls as "folderID:newName"
	Renames []string
}

// NewMockDriveClient creates a new MockDriveClient
func NewMockDriveClient() *MockDriveClient {
	return &MockDriveClient{
		folders: make(map[string]*driveFolder),
		files:   make(map[string]*driveFile),
	}
}

func (m *MockDriveClient) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *MockDriveClient) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	if m.CreateFolderErr != nil {
		return "", m.CreateFolderErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID("folder")
	m.folders[id] = &driveFolder{id: id, name: name, parentID: parentID}
	return id, nil
}

func (m *MockDriveClient) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		if f.name == name && f.parentID == parentID {
			return f.id, nil
		}
	}
	return "", nil
}

func (m *MockDriveClient) RenameFolder(ctx context.Context, folderID, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folder, ok := m.folders[folderID]
	if !ok {
		return fmt.Errorf("folder %s not found", folderID)
	}
	folder.name = newName
	m.Renames = append(m.Renames, folderID+":"+newName)
	return nil
}

func (m *MockDriveClient) MoveFolder(ctx context.Context, folderID, oldParentID, newParentID string) error {
	if m.MoveFolderErr != nil {
		return m.MoveFolderErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	folder, ok := m.folders[folderID]
	if !ok {
		return fmt.Errorf("folder %s not found", folderID)
	}
	folder.parentID = newParentID
	return nil
}

func (m *MockDriveClient) FindFile(ctx context.Context, name, folderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.files {
		if f.name == name && f.folderID == folderID {
			return f.id, nil
		}
	}
	return "", nil
}

func (m *MockDriveClient) UploadFile(ctx context.Context, name, folderID, mimeType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID("file")
	m.files[id] = &driveFile{id: id, name: name, folderID: folderID, mimeType: mimeType, data: data}
	return id, nil
}

func (m *MockDriveClient) UpdateFileContent(ctx context.Context, fileID, mimeType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.files[fileID]
	if !ok {
		return fmt.Errorf("file %s not found", fileID)
	}
	file.mimeType = mimeType
	file.data = data
	return nil
}

func (m *MockDriveClient) DeleteFile(ctx context.Context, fileID string) error {
	if m.DeleteFileErr != nil {
		return m.DeleteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[fileID]; !ok {
		return fmt.Errorf("file %s not found", fileID)
	}
	delete(m.files, fileID)
	return nil
}

// AddFolder seeds a folder with a fixed id
func (m *MockDriveClient) AddFolder(id, name, parentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[id] = &driveFolder{id: id, name: name, parentID: parentID}
}

// AddFile seeds a file with a fixed id
func (m *MockDriveClient) AddFile(id, name, folderID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[id] = &driveFile{id: id, name: name, folderID: folderID, data: data}
}

// FolderParent returns the current parent of a folder, or ""
func (m *MockDriveClient) FolderParent(folderID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[folderID]; ok {
		return f.parentID
	}
	return ""
}

// FileCount returns the number of stored files
func (m *MockDriveClient) FileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// FileData returns the content of a file, or nil
func (m *MockDriveClient) FileData(fileID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[fileID]; ok {
		return f.data
	}
	return nil
}

// MockDriveClientFactory returns a fixed client for any credential
type MockDriveClientFactory struct {
	Client *MockDriveClient

	// Err forces both constructors to fail when set
	Err error

	// LastRefreshToken records the argument of ForRefreshToken
	LastRefreshToken string

	// LastAccessToken records the argument of ForAccessToken
	LastAccessToken string
}

// NewMockDriveClientFactory creates a factory around a fresh client
func NewMockDriveClientFactory() *MockDriveClientFactory {
	return &MockDriveClientFactory{Client: NewMockDriveClient()}
}

func (m *MockDriveClientFactory) ForRefreshToken(ctx context.Context, refreshToken string) (driven.DriveClient, error) {
	m.LastRefreshToken = refreshToken
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Client, nil
}

func (m *MockDriveClientFactory) ForAccessToken(ctx context.Context, accessToken string) (driven.DriveClient, error) {
	m.LastAccessToken = accessToken
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Client, nil
}
