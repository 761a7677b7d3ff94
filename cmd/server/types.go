package main

import (
	"time"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// maxBodyBytes caps request bodies for song and payload uploads.
const maxBodyBytes = 4 << 20

// SongDTO summarises a song in list responses
type SongDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist,omitempty"`
	MeasureCount int       `json:"measure_count"`
	NoteCount    int       `json:"note_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newSongDTO(s *score.Score) SongDTO {
	return SongDTO{
		ID:           s.ID,
		Title:        s.Title,
		Artist:       s.Artist,
		MeasureCount: len(s.Measures),
		NoteCount:    s.EventCount(),
		UpdatedAt:    s.UpdatedAt,
	}
}

// ListSongsResponse is the response for GET /api/songs
type ListSongsResponse struct {
	Songs []SongDTO `json:"songs"`
	Count int       `json:"count"`
}

// SaveSongResponse is the response for POST and PUT /api/songs
type SaveSongResponse struct {
	Message string       `json:"message"`
	Song    *score.Score `json:"song"`
}

// DeleteSongResponse is the response for DELETE /api/songs/{id}
type DeleteSongResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// LayoutResponse is the response for GET /api/songs/{id}/layout
type LayoutResponse struct {
	ID       string            `json:"id"`
	Measures []notation.Layout `json:"measures"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
