package domain

import "time"

// UnitStatus describes occupancy of a unit
type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "vacant"
	UnitStatusOccupied UnitStatus = "occupied"
	UnitStatusBlocked  UnitStatus = "blocked"
)

// Floor is structural metadata inside a wing
type Floor struct {
	FloorNumber   int    `json:"floorNumber"`
	FlatCount     int    `json:"flatCount"`
	DriveFolderID string `json:"driveFolderId,omitempty"`
}

// Wing is a named block of floors within a society. Wings are saved
// wholesale: each save replaces the society's previous layout.
type Wing struct {
	ID         string  `json:"id"`
	SocietyID  string  `json:"societyId"`
	Name       string  `json:"name"`
	FloorCount int     `json:"floorCount"`
	Floors     []Floor `json:"floors"`
}

// Unit is a flat/shop/office record within a wing/floor hierarchy
type Unit struct {
	ID                   string     `json:"id"`
	SocietyID            string     `json:"societyId"`
	WingID               string     `json:"wingId"`
	FloorNumber          int        `json:"floorNumber"`
	UnitName             string     `json:"unitName"`
	UnitType             string     `json:"unitType"`
	ResidentUsername     string     `json:"residentUsername,omitempty"`
	ResidentPasswordHash string     `json:"-"` // Never serialize
	Status               UnitStatus `json:"status"`
	DriveFolderID        string     `json:"driveFolderId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// UnitSummary is the client-facing view of a unit
type UnitSummary struct {
	ID               string     `json:"id"`
	WingID           string     `json:"wingId"`
	FloorNumber      int        `json:"floorNumber"`
	UnitName         string     `json:"unitName"`
	UnitType         string     `json:"unitType"`
	ResidentUsername string     `json:"residentUsername,omitempty"`
	Status           UnitStatus `json:"status"`
	DriveFolderID    string     `json:"driveFolderId,omitempty"`
}

// ToSummary converts a Unit to UnitSummary
func (u *Unit) ToSummary() *UnitSummary {
	return &UnitSummary{
		ID:               u.ID,
		WingID:           u.WingID,
		FloorNumber:      u.FloorNumber,
		UnitName:         u.UnitName,
		UnitType:         u.UnitType,
		ResidentUsername: u.ResidentUsername,
		Status:           u.Status,
		DriveFolderID:    u.DriveFolderID,
	}
}

// StaffRecord is a resident-staff member attached to a unit. Active records
// live in the staff table; archived copies are moved to archived_staff with a
// server timestamp.
type StaffRecord struct {
	ID            string     `json:"id"`
	UnitID        string     `json:"unitId"`
	SocietyID     string     `json:"societyId"`
	Name          string     `json:"name"`
	Role          string     `json:"role,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	DriveFolderID string     `json:"driveFolderId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	DriveArchived bool       `json:"driveArchived"`
}
