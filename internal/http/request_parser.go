package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"studytrack/internal/core"
)

const maxBodyBytes = 64 << 10

// pathID extracts a positive numeric id from the named path wildcard.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// pathInt extracts a numeric path wildcard bounded to [min, max].
func pathInt(r *http.Request, name string, min, max int) (int, error) {
	raw := r.PathValue(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// pathDate extracts an ISO date (YYYY-MM-DD) from the named path wildcard.
func pathDate(r *http.Request, name string) (core.Date, error) {
	d, err := core.ParseDate(r.PathValue(name))
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// decodeJSON reads the request body into dst, rejecting oversized bodies
// and trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("malformed JSON body: trailing data")
	}
	return nil
}

// recordFilter is the parsed query string of GET /api/records. At most
// one filter mode may be used per request.
type recordFilter struct {
	date       *core.Date
	start, end *core.Date
	year       *int
}

func parseRecordFilter(r *http.Request) (recordFilter, error) {
	q := r.URL.Query()
	var f recordFilter

	if v := q.Get("date"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid date: %w", err)
		}
		f.date = &d
	}
	if v := q.Get("startDate"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid startDate: %w", err)
		}
		f.start = &d
	}
	if v := q.Get("endDate"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid endDate: %w", err)
		}
		f.end = &d
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return f, fmt.Errorf("invalid year %q", v)
		}
		f.year = &y
	}

	if (f.start == nil) != (f.end == nil) {
		return f, fmt.Errorf("startDate and endDate must be used together")
	}

	modes := 0
	if f.date != nil {
		modes++
	}
	if f.start != nil {
		modes++
	}
	if f.year != nil {
		modes++
	}
	if modes > 1 {
		return f, fmt.Errorf("use at most one of date, startDate/endDate, year")
	}
	return f, nil
}
