package http

import "net/http"

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year", 1, 9999)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	summaries, err := s.services.Reports.MonthlyReport(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year", 1, 9999)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	month, err := pathInt(r, "month", 1, 12)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	summaries, err := s.services.Reports.DailyReport(r.Context(), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
