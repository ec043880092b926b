package domain

import "time"

// Society is the admin-scoped root record. Its ID is the admin's permanent
// subject id from the identity provider, so one admin owns exactly one society.
type Society struct {
	ID               string    `json:"id"`
	SocietyName      string    `json:"societyName"`
	AdminName        string    `json:"adminName"`
	AdminEmail       string    `json:"adminEmail"`
	AppID            string    `json:"appId"`
	DriveFolderID    string    `json:"driveFolderId"`
	DriveAccessToken string    `json:"-"` // Never serialize
	IsDriveLinked    bool      `json:"isDriveLinked"`
	UnitCount        int       `json:"unitCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SocietySummary provides a safe view of a society (no access token)
type SocietySummary struct {
	ID            string    `json:"id"`
	SocietyName   string    `json:"societyName"`
	AdminName     string    `json:"adminName"`
	AdminEmail    string    `json:"adminEmail"`
	DriveFolderID string    `json:"driveFolderId"`
	IsDriveLinked bool      `json:"isDriveLinked"`
	UnitCount     int       `json:"unitCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToSummary converts a Society to SocietySummary
func (s *Society) ToSummary() *SocietySummary {
	return &SocietySummary{
		ID:            s.ID,
		SocietyName:   s.SocietyName,
		AdminName:     s.AdminName,
		AdminEmail:    s.AdminEmail,
		DriveFolderID: s.DriveFolderID,
		IsDriveLinked: s.IsDriveLinked,
		UnitCount:     s.UnitCount,
		CreatedAt:     s.CreatedAt,
	}
}

// SecureToken is the separately access-controlled record holding the
// long-lived Drive refresh token for an admin. Stored encrypted at rest.
type SecureToken struct {
	AdminUID     string    `json:"adminUid"`
	RefreshToken string    `json:"-"`
	Email        string    `json:"email"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
