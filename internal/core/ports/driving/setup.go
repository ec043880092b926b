package driving

import "context"

// FinalizeFormData carries the profile fields collected by the setup form.
type FinalizeFormData struct {
	SocietyName string `json:"societyName"`
	AdminName   string `json:"adminName"`
}

// FinalizeRequest converts a provisional OAuth handshake into a permanent
// admin account and society record. Clients send the profile fields nested
// under formData; the flat fields are accepted as a fallback and the nested
// values win when both are present.
type FinalizeRequest struct {
	SetupSessionID string           `json:"setupSessionId"`
	AppID          string           `json:"appId"`
	FormData       FinalizeFormData `json:"formData"`

	SocietyName string `json:"societyName,omitempty"`
	AdminName   string `json:"adminName,omitempty"`
}

// FinalizeResponse returns the session credential for immediate sign-in.
type FinalizeResponse struct {
	Success       bool   `json:"success"`
	Token         string `json:"token"`
	AdminUID      string `json:"adminUid"`
	DriveFolderID string `json:"driveFolderId"`
}

// SetupService runs the deferred-account-creation workflow.
type SetupService interface {
	// Finalize creates the authentication account, the root storage folder
	// and the permanent society record. Each step can fail independently and
	// aborts the remainder; there is no compensating rollback.
	Finalize(ctx context.Context, req FinalizeRequest) (*FinalizeResponse, error)
}
