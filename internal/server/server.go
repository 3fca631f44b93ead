// Package server exposes the journey planner over HTTP, guarded by a
// shared API key.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/perronapp/perron/internal/disclaimer"
	"github.com/perronapp/perron/internal/plan"
	"github.com/perronapp/perron/internal/render"
)

const apiKeyHeader = "X-API-Key"

// Planner is the planning surface the handlers need. Satisfied by
// planner.Planner.
type Planner interface {
	Options(ctx context.Context, from, to string, limit int) (plan.OptionsList, error)
	Itinerary(ctx context.Context, from, to string) (plan.Itinerary, error)
}

type Server struct {
	planner     Planner
	disclaimers *disclaimer.Store
	logger      *logrus.Logger
	apiKey      string
	language    string
	limit       int
}

func New(planner Planner, disclaimers *disclaimer.Store, logger *logrus.Logger, apiKey, language string, limit int) *Server {
	return &Server{
		planner:     planner,
		disclaimers: disclaimers,
		logger:      logger,
		apiKey:      apiKey,
		language:    language,
		limit:       limit,
	}
}

// Routes wires the handlers behind the path-key rewrite and the API-key
// check.
func (s *Server) Routes() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/plan", s.handlePlan)
	router.HandlerFunc(http.MethodGet, "/plan/text", s.handlePlanText)
	router.HandlerFunc(http.MethodGet, "/itinerary", s.handleItinerary)
	return s.pathKey(s.auth(router))
}

// pathKey promotes a leading UUID path segment into the X-API-Key header
// and strips it from the path. Some clients cannot send custom headers, so
// the key may arrive smuggled in the URL. Keep such URLs out of access
// logs.
func (s *Server) pathKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		segments := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")
		if len(segments) >= 2 {
			if _, err := uuid.Parse(segments[0]); err == nil {
				if r.Header.Get(apiKeyHeader) == "" {
					r.Header.Set(apiKeyHeader, segments[0])
				}
				r.URL.Path = "/" + strings.Join(segments[1:], "/")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// auth rejects requests whose X-API-Key header does not match the
// configured key.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			s.logger.WithField("path", r.URL.Path).Warn("rejected request: invalid api key")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.places(w, r)
	if !ok {
		return
	}

	options, err := s.planner.Options(r.Context(), from, to, s.limit)
	if err != nil {
		s.planFailed(w, err)
		return
	}
	s.writeJSON(w, render.NewPlan(options))
}

func (s *Server) handlePlanText(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.places(w, r)
	if !ok {
		return
	}

	options, err := s.planner.Options(r.Context(), from, to, 1)
	if err != nil {
		s.planFailed(w, err)
		return
	}

	text := render.Sentence(options, from, to)
	if d := s.disclaimers.Text(s.language); d != "" {
		text += "\n\n" + d
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, text)
}

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.places(w, r)
	if !ok {
		return
	}

	itinerary, err := s.planner.Itinerary(r.Context(), from, to)
	if err != nil {
		s.planFailed(w, err)
		return
	}
	s.writeJSON(w, struct {
		Legs []plan.FlatRow `json:"legs"`
	}{Legs: plan.FlattenAll(itinerary)})
}

func (s *Server) places(w http.ResponseWriter, r *http.Request) (from, to string, ok bool) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return "", "", false
	}
	return from, to, true
}

func (s *Server) planFailed(w http.ResponseWriter, err error) {
	s.logger.WithField("error", err).Error("journey planning failed")
	http.Error(w, "journey planning failed", http.StatusBadGateway)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithField("error", err).Error("writing response failed")
	}
}
