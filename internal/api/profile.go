package api

import (
	"encoding/json"
	"net/http"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/akarpov/mentor-labs/internal/identity"
	"github.com/akarpov/mentor-labs/internal/progress"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

// HandleGetProfile handles GET /api/profile. The first read for a device
// seeds the demo profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load profile", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	JSON(w, http.StatusOK, p)
}

// HandleSetUser handles PUT /api/profile/user.
func (h *Handler) HandleSetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		Error(w, http.StatusBadRequest, "name is required")
		return
	}
	p, err := h.profiles.SetUser(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		h.logger.Error("failed to set user", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	JSON(w, http.StatusOK, p)
}

// HandleUpdateProgress handles PATCH /api/profile/progress.
func (h *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var patch progress.ProgressPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.profiles.UpdateProgress(r.Context(), userID, patch)
	if err != nil {
		h.logger.Error("failed to update progress", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to update progress")
		return
	}
	JSON(w, http.StatusOK, p)
}

// HandleAddSession handles POST /api/profile/sessions.
func (h *Handler) HandleAddSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var sess domain.MentorshipSession
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sess.Duration < 0 {
		Error(w, http.StatusBadRequest, "duration must not be negative")
		return
	}
	p, err := h.profiles.AddSession(r.Context(), userID, sess)
	if err != nil {
		h.logger.Error("failed to add session", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to record session")
		return
	}
	JSON(w, http.StatusCreated, p)
}

// HandleAddJournalEntry handles POST /api/profile/journal.
func (h *Handler) HandleAddJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var entry domain.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.profiles.AddJournalEntry(r.Context(), userID, entry)
	if err != nil {
		h.logger.Error("failed to add journal entry", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to record journal entry")
		return
	}
	JSON(w, http.StatusCreated, p)
}

// HandleUpdateJournalEntry handles PATCH /api/profile/journal/{entryID}.
func (h *Handler) HandleUpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var patch progress.JournalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.profiles.UpdateJournalEntry(r.Context(), userID, chi.URLParam(r, "entryID"), patch)
	if err != nil {
		h.logger.Error("failed to update journal entry", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to update journal entry")
		return
	}
	JSON(w, http.StatusOK, p)
}

// HandleAddAchievement handles POST /api/profile/achievements.
func (h *Handler) HandleAddAchievement(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var a domain.Achievement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if a.Title == "" {
		Error(w, http.StatusBadRequest, "title is required")
		return
	}
	p, err := h.profiles.AddAchievement(r.Context(), userID, a)
	if err != nil {
		h.logger.Error("failed to add achievement", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to record achievement")
		return
	}
	JSON(w, http.StatusCreated, p)
}

// HandleLogout handles POST /api/profile/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.profiles.Logout(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear profile", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
