package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSociety_ToSummary(t *testing.T) {
	soc := &Society{
		ID:               "uid-123",
		SocietyName:      "Oak Towers",
		AdminName:        "Jane",
		AdminEmail:       "admin@gmail.com",
		DriveFolderID:    "folder-1",
		DriveAccessToken: "ya29.secret",
		IsDriveLinked:    true,
		UnitCount:        12,
		CreatedAt:        time.Now(),
	}

	summary := soc.ToSummary()

	if summary.ID != soc.ID {
		t.Errorf("ID = %q, want %q", summary.ID, soc.ID)
	}
	if summary.SocietyName != "Oak Towers" {
		t.Errorf("SocietyName = %q, want %q", summary.SocietyName, "Oak Towers")
	}
	if !summary.IsDriveLinked {
		t.Error("IsDriveLinked = false, want true")
	}
}

func TestSociety_AccessTokenNeverSerialized(t *testing.T) {
	soc := &Society{ID: "uid-123", DriveAccessToken: "ya29.secret"}

	data, err := json.Marshal(soc)
	if err != nil {
		t.Fatalf("marshal society: %v", err)
	}
	if strings.Contains(string(data), "ya29.secret") {
		t.Error("access token leaked into JSON output")
	}
}
