package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Success bool `json:"success" example:"true"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness after checking database and cache connections
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// OAuth endpoints

// handleGoogleAuthURL godoc
// @Summary      Start Google account linking
// @Description  Redirects to the Google consent screen for signup or login
// @Tags         OAuth
// @Param        adminUID  query  string  false  "Admin identifier (login flows)"
// @Param        appId     query  string  true   "Calling application id"
// @Param        isSignup  query  bool    false  "Request offline Drive access"
// @Success      302
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/google/url [get]
func (s *Server) handleGoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := driving.BuildAuthURLRequest{
		AdminUID: q.Get("adminUID"),
		AppID:    q.Get("appId"),
		IsSignup: q.Get("isSignup") == "true",
	}

	url, err := s.oauthService.BuildAuthURL(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// callbackPage posts the callback outcome to the window that opened the
// consent popup, then closes itself. Both the payload and the target origin
// are already JSON-encoded. The target origin keeps tokens and session ids
// away from an opener on an unexpected origin.
const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Authentication</title></head>
<body>
<script>
  var result = %s;
  if (window.opener) {
    window.opener.postMessage(result, %s);
  }
  window.close();
</script>
<p>You can close this window.</p>
</body>
</html>`

// handleGoogleCallback godoc
// @Summary      Google OAuth redirect target
// @Description  Exchanges the authorization code and renders an HTML page that
// @Description  posts the outcome to the opener window
// @Tags         OAuth
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "Opaque state parameter"
// @Produce      html
// @Success      200
// @Router       /auth/google/callback [get]
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := driving.CallbackRequest{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}

	result, err := s.oauthService.HandleCallback(r.Context(), req)
	if err != nil {
		s.writeCallbackPage(w, map[string]string{
			"status": "error",
			"error":  callbackErrorMessage(err),
		})
		return
	}

	s.writeCallbackPage(w, result)
}

func (s *Server) writeCallbackPage(w http.ResponseWriter, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	origin, err := json.Marshal(s.clientOrigin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, callbackPage, data, origin)
}

// callbackErrorMessage maps callback failures to the message shown to the
// opener window. The popup has no use for HTTP status codes.
func callbackErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return "access denied"
	case errors.Is(err, domain.ErrNotRegistered):
		return "account not registered"
	case errors.Is(err, domain.ErrInvalidState):
		return "authentication session expired, please try again"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid callback parameters"
	default:
		return "authentication failed"
	}
}

// handleRefreshAccessToken godoc
// @Summary      Refresh Drive access token
// @Description  Mints a fresh access token from the stored refresh token
// @Tags         OAuth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse  "Drive not linked"
// @Security     BearerAuth
// @Router       /auth/google/refresh [get]
func (s *Server) handleRefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	accessToken, err := s.oauthService.RefreshAccessToken(r.Context(), authCtx.AdminUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Setup endpoint

// handleFinalizeSetup godoc
// @Summary      Finalize deferred account creation
// @Description  Creates the admin account, root Drive folder and society record
// @Description  from a pending signup session
// @Tags         Setup
// @Accept       json
// @Produce      json
// @Param        request  body      driving.FinalizeRequest  true  "Setup session and society details"
// @Success      200      {object}  driving.FinalizeResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      404      {object}  ErrorResponse  "Unknown or expired setup session"
// @Router       /admin/finalize-setup [post]
func (s *Server) handleFinalizeSetup(w http.ResponseWriter, r *http.Request) {
	var req driving.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.setupService.Finalize(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Password reset endpoints

// handleForgotPassword godoc
// @Summary      Request a password-reset code
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        request  body      driving.ForgotPasswordRequest  true  "Registered admin email"
// @Success      200      {object}  StatusResponse
// @Failure      404      {object}  ErrorResponse  "Email not registered"
// @Router       /auth/forgot-password [post]
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req driving.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.passwordService.ForgotPassword(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// handleVerifyOTP godoc
// @Summary      Verify a password-reset code
// @Description  Checks the code without consuming it
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        request  body      driving.VerifyOTPRequest  true  "Email and code"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Wrong or expired code"
// @Failure      429      {object}  ErrorResponse  "Attempt budget exhausted"
// @Router       /auth/verify-otp [post]
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req driving.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.passwordService.VerifyOTP(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// handleResetPassword godoc
// @Summary      Reset the password with a valid code
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        request  body      driving.ResetPasswordRequest  true  "Email, code and new password"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Wrong code or weak password"
// @Failure      429      {object}  ErrorResponse  "Attempt budget exhausted"
// @Router       /auth/reset-password [post]
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req driving.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.passwordService.ResetPassword(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// Drive endpoints

// handleUploadStaffFile godoc
// @Summary      Upload a staff document
// @Description  Uploads one file into the staff member's Drive subfolder,
// @Description  creating the folder on first use
// @Tags         Drive
// @Accept       json
// @Produce      json
// @Param        request  body      driving.UploadStaffFileRequest  true  "File payload (data URI)"
// @Success      200      {object}  driving.UploadStaffFileResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "Drive not linked"
// @Security     BearerAuth
// @Router       /drive/upload-resident-staff [post]
func (s *Server) handleUploadStaffFile(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req driving.UploadStaffFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AdminUID = authCtx.AdminUID

	resp, err := s.driveService.UploadStaffFile(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteStaffFile godoc
// @Summary      Delete a staff document
// @Description  Removes a file by exact name; deleting a missing file succeeds
// @Tags         Drive
// @Accept       json
// @Produce      json
// @Param        request  body      driving.DeleteStaffFileRequest  true  "Folder and file name"
// @Success      200      {object}  driving.DeleteStaffFileResponse
// @Failure      400      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /drive/delete-resident-file [post]
func (s *Server) handleDeleteStaffFile(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req driving.DeleteStaffFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AdminUID = authCtx.AdminUID

	resp, err := s.driveService.DeleteStaffFile(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleArchiveStaff godoc
// @Summary      Archive a staff member
// @Description  Moves the staff folder into "Archived Staff" (best effort) and
// @Description  always moves the database record
// @Tags         Drive
// @Accept       json
// @Produce      json
// @Param        request  body      driving.ArchiveStaffRequest  true  "Staff and folder identifiers"
// @Success      200      {object}  driving.ArchiveStaffResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "Unknown staff record"
// @Security     BearerAuth
// @Router       /drive/archive-resident-staff [post]
func (s *Server) handleArchiveStaff(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req driving.ArchiveStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AdminUID = authCtx.AdminUID

	resp, err := s.driveService.ArchiveStaff(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Society endpoints

// handleGetSociety godoc
// @Summary      Get the admin's society
// @Tags         Society
// @Produce      json
// @Success      200  {object}  domain.SocietySummary
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /society [get]
func (s *Server) handleGetSociety(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	summary, err := s.societyService.Get(r.Context(), authCtx.AdminUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type saveWingsRequest struct {
	Wings []driving.WingInput `json:"wings"`
}

// handleSaveWings godoc
// @Summary      Replace the society layout
// @Description  Saves the wing/floor layout wholesale; the previous layout is
// @Description  discarded
// @Tags         Society
// @Accept       json
// @Produce      json
// @Param        request  body      saveWingsRequest  true  "Full wing list"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /society/wings [put]
func (s *Server) handleSaveWings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req saveWingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.societyService.SaveWings(r.Context(), authCtx.AdminUID, req.Wings); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// handleGetWings godoc
// @Summary      Get the society layout
// @Tags         Society
// @Produce      json
// @Success      200  {array}  domain.Wing
// @Security     BearerAuth
// @Router       /society/wings [get]
func (s *Server) handleGetWings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	wings, err := s.societyService.GetWings(r.Context(), authCtx.AdminUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, wings)
}

type saveUnitsRequest struct {
	Units []driving.UnitInput `json:"units"`
}

type saveUnitsResponse struct {
	Success   bool `json:"success"`
	UnitCount int  `json:"unitCount"`
}

// handleSaveUnits godoc
// @Summary      Upsert unit records
// @Description  Saves units in one transaction and returns the society's new
// @Description  unit count
// @Tags         Society
// @Accept       json
// @Produce      json
// @Param        request  body      saveUnitsRequest  true  "Unit records"
// @Success      200      {object}  saveUnitsResponse
// @Failure      400      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /society/units [post]
func (s *Server) handleSaveUnits(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req saveUnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := s.societyService.SaveUnits(r.Context(), authCtx.AdminUID, req.Units)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saveUnitsResponse{Success: true, UnitCount: count})
}

// handleListUnits godoc
// @Summary      List unit summaries
// @Tags         Society
// @Param        wingId  query  string  false  "Filter by wing"
// @Produce      json
// @Success      200  {array}  domain.UnitSummary
// @Security     BearerAuth
// @Router       /society/units [get]
func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	units, err := s.societyService.ListUnits(r.Context(), authCtx.AdminUID, r.URL.Query().Get("wingId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, units)
}

// handleRegisterStaff godoc
// @Summary      Register a staff member
// @Description  Attaches a staff member to one of the admin's units
// @Tags         Society
// @Accept       json
// @Produce      json
// @Param        request  body      driving.RegisterStaffRequest  true  "Staff details"
// @Success      200      {object}  domain.StaffRecord
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "Unknown unit"
// @Security     BearerAuth
// @Router       /society/staff [post]
func (s *Server) handleRegisterStaff(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "missing auth context")
		return
	}

	var req driving.RegisterStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := s.societyService.RegisterStaff(r.Context(), authCtx.AdminUID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain sentinels onto HTTP status codes. Anything
// unrecognized is an upstream failure and surfaces as 500 with its message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusBadRequest, "invalid oauth state")
	case errors.Is(err, domain.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, "otp expired")
	case errors.Is(err, domain.ErrOTPInvalid):
		writeError(w, http.StatusBadRequest, "invalid otp")
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrNotRegistered):
		writeError(w, http.StatusNotFound, "account not registered")
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, http.StatusNotFound, "setup session expired")
	case errors.Is(err, domain.ErrDriveNotLinked):
		writeError(w, http.StatusNotFound, "drive not linked")
	case errors.Is(err, domain.ErrOTPNotFound):
		writeError(w, http.StatusNotFound, "otp not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "too many attempts")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
