package http

import "net/http"

// memoRequest is the body of PUT /api/memos/{date}.
type memoRequest struct {
	Memo string `json:"memo"`
}

func (s *Server) handleGetMemo(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	memo, err := s.services.Memos.GetMemo(r.Context(), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memo)
}

func (s *Server) handleSaveMemo(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	var req memoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	memo, err := s.services.Memos.SaveMemo(r.Context(), date, req.Memo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memo)
}
