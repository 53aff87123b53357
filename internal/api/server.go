// Package api exposes the assembled timeline layout over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/orders"
	"github.com/fabwerk/ganttline/pkg/render/gantt"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Server serves layout snapshots computed from the order repository.
type Server struct {
	repo   orders.Repository
	bounds timeline.Bounds
	units  map[timeline.Granularity]float64
	margin int
	clock  timeline.Clock
	logger *log.Logger
	router chi.Router
}

// NewServer wires the routes. The clock defaults to time.Now.
func NewServer(repo orders.Repository, bounds timeline.Bounds, units map[timeline.Granularity]float64, marginDays int, logger *log.Logger, clock timeline.Clock) *Server {
	if clock == nil {
		clock = time.Now
	}
	s := &Server{
		repo:   repo,
		bounds: bounds,
		units:  units,
		margin: marginDays,
		clock:  clock,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleLayout computes a layout for the requested view parameters.
//
// Query parameters: status, priority (filters), granularity (week, month,
// quarter), ppd (pixels per day, clamped to the configured bounds).
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := timeline.NewViewState(timeline.GranularityMonth, s.bounds, s.units)
	if raw := q.Get("granularity"); raw != "" {
		g, err := timeline.ParseGranularity(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidGranularity, err, "granularity %q", raw))
			return
		}
		view.SetGranularity(g)
	}
	if raw := q.Get("ppd"); raw != "" {
		ppd, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidFormat, "ppd %q is not a number", raw))
			return
		}
		view.Zoom(ppd - view.PixelsPerDay())
	}
	view.SetFilter(timeline.Filter{
		Status:   timeline.ParseStatus(q.Get("status")),
		Priority: parsePriorityParam(q.Get("priority")),
	})

	query := orders.QueryFor(view.Filter())
	loaded, err := s.repo.FetchOrders(r.Context(), query)
	if err != nil {
		s.logger.Error("order fetch failed", "error", err)
		s.writeError(w, http.StatusServiceUnavailable, errors.Wrap(errors.ErrCodeDataUnavailable, err, "order data unavailable"))
		return
	}

	tracker := timeline.NewTracker(s.margin, s.clock)
	tracker.Observe(loaded)
	layout := timeline.Assemble(loaded, view, tracker.Window(), s.clock)

	body, err := gantt.MarshalLayout(layout)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// parsePriorityParam keeps an absent parameter as "no filter" instead of
// letting ParsePriority substitute the default priority.
func parsePriorityParam(raw string) timeline.Priority {
	if raw == "" {
		return ""
	}
	return timeline.ParsePriority(raw)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)})
	w.Write(body)
}
