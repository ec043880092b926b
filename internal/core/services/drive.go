package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure driveService implements DriveService
var _ driving.DriveService = (*driveService)(nil)

// archiveFolderName is the sibling folder archived staff folders move into.
const archiveFolderName = "Archived Staff"

// DriveServiceConfig holds configuration for the drive service.
type DriveServiceConfig struct {
	// SecureTokenStore provides the refresh token the client is built from.
	SecureTokenStore driven.SecureTokenStore

	// DriveFactory builds per-request clients.
	DriveFactory driven.DriveClientFactory

	// StaffStore moves staff records into the archive.
	StaffStore driven.StaffStore

	Logger *slog.Logger
}

// driveService implements the DriveService interface.
type driveService struct {
	secureTokens driven.SecureTokenStore
	driveFactory driven.DriveClientFactory
	staff        driven.StaffStore
	logger       *slog.Logger
}

// NewDriveService creates a new drive service.
func NewDriveService(cfg DriveServiceConfig) driving.DriveService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &driveService{
		secureTokens: cfg.SecureTokenStore,
		driveFactory: cfg.DriveFactory,
		staff:        cfg.StaffStore,
		logger:       logger,
	}
}

// clientFor builds a Drive client from the admin's stored refresh token.
func (s *driveService) clientFor(ctx context.Context, adminUID string) (driven.DriveClient, error) {
	if adminUID == "" {
		return nil, fmt.Errorf("%w: adminUID is required", domain.ErrInvalidInput)
	}
	token, err := s.secureTokens.Get(ctx, adminUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDriveNotLinked
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	client, err := s.driveFactory.ForRefreshToken(ctx, token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return client, nil
}

// UploadStaffFile uploads one document into the staff member's subfolder,
// creating or renaming the subfolder as needed. Re-uploading the same file
// name updates the existing file in place rather than creating a duplicate.
func (s *driveService) UploadStaffFile(ctx context.Context, req driving.UploadStaffFileRequest) (*driving.UploadStaffFileResponse, error) {
	if req.ParentFolderID == "" || req.StaffName == "" || req.FileName == "" || req.Base64Data == "" {
		return nil, fmt.Errorf("%w: parentFolderId, staffName, fileName and base64Data are required", domain.ErrInvalidInput)
	}

	data, mimeType, err := decodeDataURI(req.Base64Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	client, err := s.clientFor(ctx, req.AdminUID)
	if err != nil {
		return nil, err
	}

	staffFolderID := req.StaffFolderID
	if staffFolderID != "" {
		// Known folder: keep its name in sync with the staff name.
		if err := client.RenameFolder(ctx, staffFolderID, req.StaffName); err != nil {
			return nil, fmt.Errorf("rename staff folder: %w", err)
		}
	} else {
		staffFolderID, err = client.FindFolder(ctx, req.StaffName, req.ParentFolderID)
		if err != nil {
			return nil, fmt.Errorf("find staff folder: %w", err)
		}
		if staffFolderID == "" {
			staffFolderID, err = client.CreateFolder(ctx, req.StaffName, req.ParentFolderID)
			if err != nil {
				return nil, fmt.Errorf("create staff folder: %w", err)
			}
		}
	}

	fileID, err := client.FindFile(ctx, req.FileName, staffFolderID)
	if err != nil {
		return nil, fmt.Errorf("find file: %w", err)
	}
	if fileID != "" {
		if err := client.UpdateFileContent(ctx, fileID, mimeType, data); err != nil {
			return nil, fmt.Errorf("update file: %w", err)
		}
	} else {
		fileID, err = client.UploadFile(ctx, req.FileName, staffFolderID, mimeType, data)
		if err != nil {
			return nil, fmt.Errorf("upload file: %w", err)
		}
	}

	return &driving.UploadStaffFileResponse{
		Success:       true,
		FileID:        fileID,
		StaffFolderID: staffFolderID,
	}, nil
}

// DeleteStaffFile removes a file by exact name within a staff folder.
// A file that is already gone counts as success.
func (s *driveService) DeleteStaffFile(ctx context.Context, req driving.DeleteStaffFileRequest) (*driving.DeleteStaffFileResponse, error) {
	if req.StaffFolderID == "" || req.FileName == "" {
		return nil, fmt.Errorf("%w: staffFolderId and fileName are required", domain.ErrInvalidInput)
	}

	client, err := s.clientFor(ctx, req.AdminUID)
	if err != nil {
		return nil, err
	}

	fileID, err := client.FindFile(ctx, req.FileName, req.StaffFolderID)
	if err != nil {
		return nil, fmt.Errorf("find file: %w", err)
	}
	if fileID == "" {
		return &driving.DeleteStaffFileResponse{
			Success: true,
			Message: "file not found, nothing to delete",
		}, nil
	}

	if err := client.DeleteFile(ctx, fileID); err != nil {
		return nil, fmt.Errorf("delete file: %w", err)
	}
	return &driving.DeleteStaffFileResponse{
		Success: true,
		Message: "file deleted",
	}, nil
}

// ArchiveStaff moves the staff folder into the "Archived Staff" sibling and
// moves the database record into the archive. The folder move is best-effort:
// a storage failure is recorded on the archived record, never a reason to
// keep the active record.
func (s *driveService) ArchiveStaff(ctx context.Context, req driving.ArchiveStaffRequest) (*driving.ArchiveStaffResponse, error) {
	if req.UnitID == "" || req.StaffID == "" {
		return nil, fmt.Errorf("%w: unitId and staffId are required", domain.ErrInvalidInput)
	}

	driveArchived := false
	if req.StaffFolderID != "" && req.ParentFolderID != "" {
		if err := s.moveToArchive(ctx, req); err != nil {
			s.logger.Warn("drive archive move failed, archiving record anyway",
				"admin_uid", req.AdminUID, "staff_id", req.StaffID, "error", err)
		} else {
			driveArchived = true
		}
	}

	if err := s.staff.Archive(ctx, req.UnitID, req.StaffID, driveArchived); err != nil {
		return nil, fmt.Errorf("archive staff record: %w", err)
	}

	return &driving.ArchiveStaffResponse{
		Success:       true,
		DriveArchived: driveArchived,
	}, nil
}

// moveToArchive finds or creates the archive folder and reparents the staff
// folder into it.
func (s *driveService) moveToArchive(ctx context.Context, req driving.ArchiveStaffRequest) error {
	client, err := s.clientFor(ctx, req.AdminUID)
	if err != nil {
		return err
	}

	archiveID, err := client.FindFolder(ctx, archiveFolderName, req.ParentFolderID)
	if err != nil {
		return fmt.Errorf("find archive folder: %w", err)
	}
	if archiveID == "" {
		archiveID, err = client.CreateFolder(ctx, archiveFolderName, req.ParentFolderID)
		if err != nil {
			return fmt.Errorf("create archive folder: %w", err)
		}
	}

	if err := client.MoveFolder(ctx, req.StaffFolderID, req.ParentFolderID, archiveID); err != nil {
		return fmt.Errorf("move staff folder: %w", err)
	}
	return nil
}

// decodeDataURI decodes base64 content that may carry a data-URI prefix
// ("data:<mime>;base64,<payload>") or be bare base64.
func decodeDataURI(raw string) ([]byte, string, error) {
	mimeType := "application/octet-stream"
	payload := raw

	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data uri")
		}
		header := raw[len("data:"):idx]
		payload = raw[idx+1:]
		if mt, ok := strings.CutSuffix(header, ";base64"); ok {
			if mt != "" {
				mimeType = mt
			}
		} else {
			return nil, "", fmt.Errorf("data uri is not base64 encoded")
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}
	return data, mimeType, nil
}
