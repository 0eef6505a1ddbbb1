package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"pictocode/internal/game"
	"pictocode/internal/service"
	"pictocode/internal/transport/rest/handler"
	"pictocode/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Sessions    *service.SessionService
	Guesses     *service.GuessService
	Oracle      *service.SimilarityClient
	Registry    *game.Registry
	WSHub       *ws.Hub
	CORSOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(c.Sessions, c.Oracle)
	wsHandler := ws.NewHandler(c.WSHub, c.Sessions, c.Guesses, c.Registry)

	r.Use(corsMiddleware(c.CORSOrigins))

	r.HandleFunc("/health", roomHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/rooms/{roomId}", roomHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{roomId}/descriptions", roomHandler.ClearDescriptions).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/test-gameplay", roomHandler.TestGameplay).Methods("GET", "OPTIONS")

	r.HandleFunc("/ws/rooms/{roomId}", wsHandler.RoomWS).Methods("GET")

	return r
}

func corsMiddleware(origins string) mux.MiddlewareFunc {
	if origins == "" {
		origins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
