package driving

import "context"

// UploadStaffFileRequest uploads one document into a per-staff subfolder.
type UploadStaffFileRequest struct {
	AdminUID       string `json:"adminUID"`
	AppID          string `json:"appId"`
	ParentFolderID string `json:"parentFolderId"`
	StaffName      string `json:"staffName"`
	FileName       string `json:"fileName"`
	Base64Data     string `json:"base64Data"`
	StaffFolderID  string `json:"staffFolderId,omitempty"`
}

// UploadStaffFileResponse reports the uploaded file and its staff folder.
type UploadStaffFileResponse struct {
	Success       bool   `json:"success"`
	FileID        string `json:"fileId"`
	StaffFolderID string `json:"staffFolderId"`
}

// DeleteStaffFileRequest removes a file by exact name within a staff folder.
type DeleteStaffFileRequest struct {
	AdminUID      string `json:"adminUID"`
	AppID         string `json:"appId"`
	StaffFolderID string `json:"staffFolderId"`
	FileName      string `json:"fileName"`
}

// DeleteStaffFileResponse reports the idempotent delete outcome.
type DeleteStaffFileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ArchiveStaffRequest moves a staff member's folder and record to the archive.
type ArchiveStaffRequest struct {
	AdminUID       string `json:"adminUID"`
	AppID          string `json:"appId"`
	ParentFolderID string `json:"parentFolderId"`
	StaffFolderID  string `json:"staffFolderId"`
	UnitID         string `json:"unitId"`
	StaffID        string `json:"staffId"`
}

// ArchiveStaffResponse reports whether the best-effort folder move succeeded.
type ArchiveStaffResponse struct {
	Success       bool `json:"success"`
	DriveArchived bool `json:"driveArchived"`
}

// DriveService runs upload/delete/archive workflows against the remote
// storage API using the admin's stored credentials.
type DriveService interface {
	UploadStaffFile(ctx context.Context, req UploadStaffFileRequest) (*UploadStaffFileResponse, error)
	DeleteStaffFile(ctx context.Context, req DeleteStaffFileRequest) (*DeleteStaffFileResponse, error)

	// ArchiveStaff moves the staff folder into the "Archived Staff" sibling
	// (created on first use) and always moves the database record, even when
	// the folder move fails.
	ArchiveStaff(ctx context.Context, req ArchiveStaffRequest) (*ArchiveStaffResponse, error)
}
