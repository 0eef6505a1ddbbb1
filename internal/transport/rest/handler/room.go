package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pictocode/internal/service"
)

// RoomHandler handles the administrative room endpoints
type RoomHandler struct {
	sessions *service.SessionService
	oracle   *service.SimilarityClient
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(sessions *service.SessionService, oracle *service.SimilarityClient) *RoomHandler {
	return &RoomHandler{
		sessions: sessions,
		oracle:   oracle,
	}
}

// Create handles POST /api/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Warm the similarity service up so the first guess of the room
	// does not pay its cold-start cost.
	warmCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if !h.oracle.Healthy(warmCtx) {
		log.Warn().Msg("similarity service not ready during room creation")
	}

	roomID, err := h.sessions.CreateRoom()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	log.Info().Str("room", roomID).Msg("room created")
	writeJSON(w, http.StatusOK, map[string]string{"roomId": roomID})
}

// Get handles GET /api/rooms/{roomId}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	state, err := h.sessions.RoomState(roomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ClearDescriptions handles DELETE /api/rooms/{roomId}/descriptions
func (h *RoomHandler) ClearDescriptions(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	if err := h.sessions.ClearDescriptions(roomID); err != nil {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// TestGameplay handles GET /api/test-gameplay, a scoring probe for
// tuning descriptions against the oracle by hand.
func (h *RoomHandler) TestGameplay(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	description := r.URL.Query().Get("description")
	if word == "" || description == "" {
		writeError(w, http.StatusBadRequest, "Please provide both word and description parameters")
		return
	}

	similarity, took, err := h.oracle.Compare(r.Context(), word, description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to calculate similarity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word":        word,
		"description": description,
		"similarity":  similarity,
		"model":       h.oracle.Model(),
		"timeTaken":   took.Milliseconds(),
	})
}

// Health handles GET /health
func (h *RoomHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"similarityReady": h.oracle.Healthy(ctx),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
