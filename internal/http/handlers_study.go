package http

import (
	"log/slog"
	"net/http"
)

// studyRequest is the body of POST and PUT /api/studies.
type studyRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

func (s *Server) handleListStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := s.services.Studies.ListStudies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, studies)
}

func (s *Server) handleGetStudy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	study, err := s.services.Studies.GetStudy(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, study)
}

func (s *Server) handleCreateStudy(w http.ResponseWriter, r *http.Request) {
	var req studyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	study, err := s.services.Studies.CreateStudy(r.Context(), req.Category, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Study created",
		"study_id", study.ID,
		"study_category", study.Category,
		"study_name", study.Name)
	writeJSON(w, http.StatusCreated, study)
}

func (s *Server) handleUpdateStudy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	var req studyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	study, err := s.services.Studies.UpdateStudy(r.Context(), id, req.Category, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, study)
}

func (s *Server) handleDeleteStudy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	if err := s.services.Studies.DeleteStudy(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
