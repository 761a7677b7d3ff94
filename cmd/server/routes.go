package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
)

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter().StrictSlash(true)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Generation service
	r.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)

	// Song store
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/songs", s.handleListSongs).Methods(http.MethodGet)
	api.HandleFunc("/songs", s.handleCreateSong).Methods(http.MethodPost)
	api.HandleFunc("/songs/{id}", s.handleGetSong).Methods(http.MethodGet)
	api.HandleFunc("/songs/{id}", s.handlePutSong).Methods(http.MethodPut)
	api.HandleFunc("/songs/{id}", s.handleDeleteSong).Methods(http.MethodDelete)
	api.HandleFunc("/songs/{id}/layout", s.handleSongLayout).Methods(http.MethodGet)
	api.HandleFunc("/songs/{id}/payload", s.handleSongPayload).Methods(http.MethodGet)
	api.HandleFunc("/songs/{id}/file", s.handleSongFile).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, fmt.Sprintf("%s not allowed on %s", r.Method, r.URL.Path))
	})

	var handler http.Handler = r
	if s.config.LogRequests {
		handler = loggingMiddleware(handler)
	}
	return corsHandler(s.config.AllowedOrigins).Handler(handler)
}

// corsHandler allows every origin unless a list is configured.
func corsHandler(allowedOrigins []string) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         3600,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = allowedOrigins
		opts.AllowCredentials = true
	}
	return cors.New(opts)
}

// loggingMiddleware logs all HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		log := logger.GetLogger()
		log.Debugf("%s %s from %s", r.Method, r.URL.Path, getClientIP(r))

		next.ServeHTTP(wrapped, r)

		log.Infof("%s %s -> %d", r.Method, r.URL.Path, wrapped.statusCode)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Start starts the HTTP server
func (s *Server) Start() error {
	handler := s.setupRoutes()

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("SimpleNote server starting on %s", addr)
	s.log.Infof("   Database: %s", s.config.DBPath)
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)
	s.log.Infof("Endpoints:")
	for _, e := range endpoints {
		s.log.Infof("   %-32s - %s", e.route, e.summary)
	}

	return http.ListenAndServe(addr, handler)
}

var endpoints = []struct {
	name, route, summary string
}{
	{"health", "GET /health", "Health check"},
	{"generate", "POST /generate?fmt=mxl|musicxml|mid", "Render an export payload to a file"},
	{"songs", "GET /api/songs", "List saved songs"},
	{"createSong", "POST /api/songs", "Save a new song"},
	{"getSong", "GET /api/songs/{id}", "Get a song"},
	{"putSong", "PUT /api/songs/{id}", "Save a song under an id"},
	{"deleteSong", "DELETE /api/songs/{id}", "Delete a song"},
	{"layout", "GET /api/songs/{id}/layout", "Beam groups and slur pairs per measure"},
	{"payload", "GET /api/songs/{id}/payload", "Export payload of a song"},
	{"file", "GET /api/songs/{id}/file?fmt=", "Render a saved song"},
}
