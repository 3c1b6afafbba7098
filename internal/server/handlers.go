package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/news"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/pipeline"
)

var validate = validator.New()

// collectRequest represents the request body for /api/collect-news. All
// fields are optional; the zero value runs a collection with the server's
// configured defaults.
type collectRequest struct {
	Mode        string         `json:"mode" validate:"omitempty,oneof=blocking streaming"`
	User        string         `json:"user" validate:"omitempty,max=128"`
	WindowHours int            `json:"window_hours" validate:"omitempty,min=1,max=168"`
	Inputs      map[string]any `json:"inputs"`
}

// collectResponse represents the response envelope for /api/collect-news.
type collectResponse struct {
	Success bool        `json:"success"`
	Data    []news.Item `json:"data"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) decodeCollectRequest(r *http.Request) (collectRequest, error) {
	var req collectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An empty body means "use the defaults".
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// collectOptions merges the request overrides with the server defaults.
func (s *Server) collectOptions(req collectRequest) pipeline.Options {
	opts := pipeline.Options{
		Transport: s.cfg.Transport,
		Mode:      s.cfg.Mode,
		User:      s.cfg.User,
		Window:    s.cfg.Window,
		Inputs:    req.Inputs,
	}
	if req.Mode != "" {
		opts.Mode = req.Mode
	}
	if req.User != "" {
		opts.User = req.User
	}
	if req.WindowHours > 0 {
		opts.Window = time.Duration(req.WindowHours) * time.Hour
	}
	return opts
}

// handleCollect runs one blocking collection and returns the ranked briefing.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCollectRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := pipeline.Collect(r.Context(), s.collectOptions(req))
	if err != nil {
		var emptyErr *pipeline.EmptyResultError
		if errors.As(err, &emptyErr) {
			// An empty briefing is a valid outcome, not a failure.
			s.jsonResponse(w, http.StatusOK, collectResponse{
				Success: true,
				Data:    []news.Item{},
				Message: "수집된 뉴스가 없습니다.",
			})
			return
		}
		log.Printf("Collect failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, collectResponse{
		Success: true,
		Data:    items,
		Message: fmt.Sprintf("%d건의 뉴스를 수집했습니다.", len(items)),
	})
}

// handleCollectStream runs one collection while streaming pipeline progress
// as Server-Sent Events, then emits a final complete or error event.
func (s *Server) handleCollectStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCollectRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.collectOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	}

	items, err := pipeline.Collect(r.Context(), opts)
	if err != nil {
		var emptyErr *pipeline.EmptyResultError
		if errors.As(err, &emptyErr) {
			sse.WriteComplete([]news.Item{}, "수집된 뉴스가 없습니다.")
			return
		}
		log.Printf("Collect failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(items, fmt.Sprintf("%d건의 뉴스를 수집했습니다.", len(items)))
}
