package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/KaramelBytes/groupr-cli/internal/parser"
	"github.com/KaramelBytes/groupr-cli/internal/render"
	"github.com/KaramelBytes/groupr-cli/internal/table"
)

const defaultUploadName = "upload.csv"

type errorResponse struct {
	Error string `json:"error"`
}

type columnsResponse struct {
	Source   string             `json:"source"`
	Columns  []table.Column     `json:"columns"`
	Rows     int                `json:"rows"`
	Warnings []table.Diagnostic `json:"warnings,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGroups parses the uploaded table and returns a fresh assignment.
//
// Query parameters: groups, seed, strict, sheet, hide, show.
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groups := s.opts.DefaultGroups
	if v := q.Get("groups"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, fmt.Errorf("%w: groups must be an integer, got %q", grouping.ErrInvalidConfiguration, v))
			return
		}
		groups = n
	}
	var src *grouping.UniformSource
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.fail(w, fmt.Errorf("%w: seed must be an unsigned integer, got %q", grouping.ErrInvalidConfiguration, v))
			return
		}
		src = grouping.NewUniformSource(seed)
	} else {
		src = grouping.NewRandomSource()
	}

	name, tbl, err := s.parseUpload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	a, err := grouping.AssignTable(tbl, groups, src)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.rowsGrouped.Add(float64(a.Len()))

	hidden := s.opts.Hidden
	if v, ok := q["hide"]; ok {
		hidden = splitList(v)
	}
	view := render.NewView(hidden, splitList(q["show"]))
	run := render.NewRun(name, src.Seed(), tbl, a, view)
	s.log.Debug("generated groups", "source", name, "rows", a.Len(), "groups", groups, "seed", src.Seed(), "run_id", run.ID)
	writeJSON(w, http.StatusOK, render.NewEnvelope(run))
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	name, tbl, err := s.parseUpload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columnsResponse{
		Source:   name,
		Columns:  tbl.Columns,
		Rows:     len(tbl.Rows),
		Warnings: tbl.Diagnostics(),
	})
}

// parseUpload reads the table from a multipart "file" field or, failing
// that, from the raw request body.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (string, *table.ParsedTable, error) {
	q := r.URL.Query()
	opts := parser.Options{Strict: s.opts.Strict, Sheet: q.Get("sheet")}
	if v := q.Get("strict"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", nil, fmt.Errorf("%w: strict must be a boolean, got %q", grouping.ErrInvalidConfiguration, v)
		}
		opts.Strict = b
	}

	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	defer body.Close()

	name := defaultUploadName
	var data []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = body
		if err := r.ParseMultipartForm(s.opts.MaxBodyBytes); err != nil {
			return "", nil, fmt.Errorf("%w: %w", parser.ErrIO, err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("%w: multipart field 'file': %w", parser.ErrIO, err)
		}
		defer f.Close()
		if hdr.Filename != "" {
			name = hdr.Filename
		}
		if data, err = io.ReadAll(f); err != nil {
			return "", nil, fmt.Errorf("%w: %w", parser.ErrIO, err)
		}
	} else {
		var err error
		if data, err = io.ReadAll(body); err != nil {
			return "", nil, fmt.Errorf("%w: %w", parser.ErrIO, err)
		}
		if v := q.Get("name"); v != "" {
			name = v
		}
	}

	start := time.Now()
	tbl, err := parser.ParseBytes(name, data, opts)
	s.metrics.parseSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", nil, err
	}
	return name, tbl, nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	} else {
		s.log.Debug("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, grouping.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, table.ErrMalformedInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrUnsupported):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrIO):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
