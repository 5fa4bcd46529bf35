package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/tsawler/aepx"
	"github.com/tsawler/aepx/diff"
	"github.com/tsawler/aepx/model"
)

type scanRequest struct {
	Path string `json:"path"`
}

type diffRequest struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	rep, ok := s.scanProject(w, req.Path)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := rep.Encode(w); err != nil {
		s.log.Error("writing scan response", "error", err)
	}
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Previous == "" || req.Current == "" {
		jsonError(w, "previous and current are required", http.StatusBadRequest)
		return
	}

	prev, ok := s.scanProject(w, req.Previous)
	if !ok {
		return
	}
	cur, ok := s.scanProject(w, req.Current)
	if !ok {
		return
	}

	res := diff.Compare(prev, cur)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := res.Encode(w); err != nil {
		s.log.Error("writing diff response", "error", err)
	}
}

// scanProject validates path and runs a scan, writing the error response
// itself when validation or scanning fails.
func (s *Server) scanProject(w http.ResponseWriter, path string) (*model.Report, bool) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			jsonError(w, "file not found: "+path, http.StatusNotFound)
		} else {
			jsonError(w, "checking file: "+err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	if !strings.HasSuffix(path, ".aepx") {
		jsonError(w, "file must have .aepx extension", http.StatusBadRequest)
		return nil, false
	}

	rep, warnings, err := aepx.Open(path).Report()
	if err != nil {
		jsonError(w, "scanning project: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	for _, warn := range warnings {
		s.log.Warn("scan warning", "path", path, "code", warn.Code, "message", warn.Message)
	}
	return rep, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
