package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/himanishpuri/SimpleNote/pkg/logger"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/generator"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/render"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service simplenote.Service
	config  *ServerConfig
	log     simplenote.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	AllowedOrigins []string
	LogRequests    bool
}

// NewServer creates a new server instance
func NewServer(service simplenote.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger().WithPrefix("[http]"),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondFile writes a generated file as an attachment
func (s *Server) respondFile(w http.ResponseWriter, title string, format export.Format, data []byte) {
	name := generator.Filename(title, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Errorf("Failed to write %s: %v", name, err)
	}
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	routes := make(map[string]string, len(endpoints))
	for _, e := range endpoints {
		routes[e.name] = e.route
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service":   "SimpleNote API",
		"version":   "1.0.0",
		"endpoints": routes,
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleGenerate handles POST /generate?fmt=
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("fmt"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p export.Payload
	if err := decodeBody(w, r, &p); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid payload: %v", err))
		return
	}
	if p.Title == "" {
		p.Title = simplenote.DefaultTitle
	}

	data, err := render.NewLocal().Generate(r.Context(), p, format)
	if err != nil {
		s.log.Errorf("Generating %s for %q failed: %v", format, p.Title, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to generate file")
		return
	}
	s.log.Infof("Generated %s for %q (%d measures, %d bytes)", format, p.Title, len(p.Measures), len(data))
	s.respondFile(w, p.Title, format, data)
}

// handleListSongs handles GET /api/songs
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.service.ListSongs(r.Context())
	if err != nil {
		s.log.Errorf("Failed to list songs: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve songs")
		return
	}

	dtos := make([]SongDTO, len(songs))
	for i := range songs {
		dtos[i] = newSongDTO(&songs[i])
	}
	s.respondJSON(w, http.StatusOK, ListSongsResponse{Songs: dtos, Count: len(dtos)})
}

// handleCreateSong handles POST /api/songs. Any id in the body is ignored.
func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var song score.Score
	if err := decodeBody(w, r, &song); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid song: %v", err))
		return
	}
	song.ID = ""

	if err := s.service.SaveSong(r.Context(), &song); err != nil {
		s.log.Errorf("Failed to save song: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to save song")
		return
	}
	s.respondJSON(w, http.StatusCreated, SaveSongResponse{Message: "Song saved successfully", Song: &song})
}

// handlePutSong handles PUT /api/songs/{id}, inserting or replacing
func (s *Server) handlePutSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var song score.Score
	if err := decodeBody(w, r, &song); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid song: %v", err))
		return
	}
	song.ID = id

	if err := s.service.SaveSong(r.Context(), &song); err != nil {
		s.log.Errorf("Failed to save song %s: %v", id, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to save song")
		return
	}
	s.respondJSON(w, http.StatusOK, SaveSongResponse{Message: "Song saved successfully", Song: &song})
}

// handleGetSong handles GET /api/songs/{id}
func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.loadSong(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, song)
}

// handleDeleteSong handles DELETE /api/songs/{id}
func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.loadSong(w, r)
	if !ok {
		return
	}

	if err := s.service.DeleteSong(r.Context(), song.ID); err != nil {
		s.log.Errorf("Failed to delete song %s: %v", song.ID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete song")
		return
	}

	s.log.Infof("Deleted song: %s (ID: %s)", song.Title, song.ID)
	s.respondJSON(w, http.StatusOK, DeleteSongResponse{Message: "Song deleted successfully", ID: song.ID})
}

// handleSongLayout handles GET /api/songs/{id}/layout
func (s *Server) handleSongLayout(w http.ResponseWriter, r *http.Request) {
	song, ok := s.loadSong(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, LayoutResponse{ID: song.ID, Measures: notation.ScoreLayout(song)})
}

// handleSongPayload handles GET /api/songs/{id}/payload
func (s *Server) handleSongPayload(w http.ResponseWriter, r *http.Request) {
	song, ok := s.loadSong(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.Payload(song))
}

// handleSongFile handles GET /api/songs/{id}/file?fmt=
func (s *Server) handleSongFile(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("fmt"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	song, ok := s.loadSong(w, r)
	if !ok {
		return
	}

	p := s.service.Payload(song)
	data, err := render.Render(p, format)
	if err != nil {
		s.log.Errorf("Rendering song %s failed: %v", song.ID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to render song")
		return
	}
	s.respondFile(w, p.Title, format, data)
}

// loadSong fetches the song named by the {id} path variable, writing the
// error response itself when it cannot.
func (s *Server) loadSong(w http.ResponseWriter, r *http.Request) (*score.Score, bool) {
	id := mux.Vars(r)["id"]
	song, err := s.service.GetSong(r.Context(), id)
	if errors.Is(err, simplenote.ErrSongNotFound) {
		s.log.Warnf("Song not found: %s", id)
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Song with ID %s not found", id))
		return nil, false
	}
	if err != nil {
		s.log.Errorf("Failed to get song %s: %v", id, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve song")
		return nil, false
	}
	return song, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
