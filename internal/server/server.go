package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"streamgap/internal/api"
	"streamgap/internal/join"
	"streamgap/internal/logging"
	"streamgap/internal/requests"
)

// Server serves the media views as JSON.
type Server struct {
	bind    string
	service *api.MediaService
	logger  *slog.Logger
	router  *mux.Router
	server  *http.Server
}

// New builds a server bound to bind once Run is called.
func New(bind string, service *api.MediaService, logger *slog.Logger) (*Server, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("server bind address required")
	}
	if service == nil {
		return nil, errors.New("media service required")
	}
	s := &Server{
		bind:    bind,
		service: service,
		logger:  logging.NewComponentLogger(logger, "api-server"),
	}
	s.router = s.routes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)
	apiRouter.HandleFunc("/providers/{name}/media", s.handleProviderMedia).Methods(http.MethodGet)
	apiRouter.HandleFunc("/groups", s.handleGroups).Methods(http.MethodGet)
	apiRouter.HandleFunc("/requests/{kind:movie|tv}", s.handleRequests).Methods(http.MethodGet)
	apiRouter.HandleFunc("/availability", s.handleAvailability).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run listens on the bind address and serves until ctx is cancelled.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	if ready != nil {
		ready(listener.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, api.FromRegistry(s.service.Registry()))
}

func (s *Server) handleProviderMedia(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	withEpisodes, _ := strconv.ParseBool(r.URL.Query().Get("episodes"))

	group, err := s.service.ByProvider(r.Context(), name)
	if errors.Is(err, join.ErrUnknownProvider) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromGroup(group, withEpisodes))
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.service.Groups(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := api.ProviderGroupsResponse{Groups: make([]api.ProviderMedia, 0, len(groups))}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, api.FromGroup(g, false))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	kind, err := requests.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reqs, err := s.service.Media(r.Context(), kind)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.MediaListResponse{Items: api.FromRequests(reqs)})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.Availability(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.AvailabilityResponse{Shows: summaries})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("api request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Duration("duration", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
