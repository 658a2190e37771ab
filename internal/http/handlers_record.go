package http

import (
	"net/http"

	"studytrack/internal/core"
)

// recordRequest is the body of POST /api/records.
type recordRequest struct {
	StudyID  int64         `json:"studyId"`
	Date     core.Date     `json:"date"`
	TimeSlot core.TimeSlot `json:"timeSlot"`
	Duration int           `json:"duration"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	var records []core.StudyRecord
	switch {
	case filter.date != nil:
		records, err = s.services.Records.ListRecordsByDate(r.Context(), *filter.date)
	case filter.start != nil:
		records, err = s.services.Records.ListRecordsByDateRange(r.Context(), *filter.start, *filter.end)
	case filter.year != nil:
		records, err = s.services.Records.ListRecordsByYear(r.Context(), *filter.year)
	default:
		records, err = s.services.Records.ListRecords(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	rec, err := s.services.Records.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	rec, err := s.services.Records.CreateRecord(r.Context(), core.StudyRecord{
		StudyID:  req.StudyID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Duration: req.Duration,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.logs.LogRecordCreated(r.Context(), rec.StudyID, rec.Date.String(), string(rec.TimeSlot), rec.Duration)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	var patch core.RecordPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	rec, err := s.services.Records.UpdateRecord(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	if err := s.services.Records.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
