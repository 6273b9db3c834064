package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleListMentors handles GET /api/mentors.
func (h *Handler) HandleListMentors(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.registry.All())
}

// HandleGetMentor handles GET /api/mentors/{mentorID}.
func (h *Handler) HandleGetMentor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mentorID")
	m, ok := h.registry.ByID(id)
	if !ok {
		Error(w, http.StatusNotFound, "mentor not found")
		return
	}
	JSON(w, http.StatusOK, m)
}
