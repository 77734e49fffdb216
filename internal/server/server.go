package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oddhouse/hearth/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the hearth HTTP API server.
type Server struct {
	store   *store.Store
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given store and version string.
func New(st *store.Store, version string) *Server {
	s := &Server{
		store:   st,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(openCORS)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody)
		r.Get("/health", s.handleHealth)

		r.Post("/seeds", s.handlePlantSeed)
		r.Get("/seeds", s.handleListSeeds)
		r.Post("/pulse", s.handlePulse)
		r.Get("/pulse", s.handlePulseState)
		r.Post("/footprints", s.handleFootprint)
		r.Get("/footprints", s.handleFootprintState)

		r.Post("/instrument/notes", s.handlePlayPhrase)
		r.Get("/instrument/notes", s.handleListPhrases)
		r.Post("/sketchpad/strokes", s.handleDrawStroke)
		r.Get("/sketchpad/strokes", s.handleListStrokes)
		r.Post("/seance/exchange", s.handleRecordExchange)
		r.Get("/seance/exchange", s.handleListExchanges)
		r.Post("/radio/broadcast", s.handleBroadcast)
		r.Get("/radio/broadcast", s.handleListBroadcasts)
		r.Post("/choir/voices", s.handleAddVoice)
		r.Get("/choir/voices", s.handleListVoices)

		// The single-text rooms differ only in limits and field names.
		textRoutes(r, "/well/echoes", s.store.Echoes, textConfig{
			collection: "echoes", list: "echoes", total: "totalEchoes",
			maxLen: 500, listN: 8, sample: true,
		})
		textRoutes(r, "/garden/plants", s.store.Plants, textConfig{
			collection: "plants", list: "plants", total: "totalPlants",
			maxLen: 500, listN: 6, sample: true,
		})
		textRoutes(r, "/study/writings", s.store.Writings, textConfig{
			collection: "writings", list: "writings", total: "totalWritings",
			maxLen: 300, listN: 7,
		})
		textRoutes(r, "/labyrinth/graffiti", s.store.Graffiti, textConfig{
			collection: "graffiti", list: "graffiti", total: "totalGraffiti",
			maxLen: 100, truncate: true, listN: 12,
		})
		textRoutes(r, "/furnace/ash", s.store.Ash, textConfig{
			collection: "ash", list: "ash", total: "totalAsh",
			maxLen: 200, truncate: true, listN: 10,
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Anything unmatched — path or method — is the installation itself.
	r.NotFound(spaHandler())
	r.MethodNotAllowed(spaHandler())

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"collections": map[string]int{
			"seeds":      s.store.Seeds.Len(),
			"echoes":     s.store.Echoes.Len(),
			"phrases":    s.store.Phrases.Len(),
			"plants":     s.store.Plants.Len(),
			"strokes":    s.store.Strokes.Len(),
			"writings":   s.store.Writings.Len(),
			"exchanges":  s.store.Exchanges.Len(),
			"broadcasts": s.store.Broadcasts.Len(),
			"graffiti":   s.store.Graffiti.Len(),
			"ash":        s.store.Ash.Len(),
			"voices":     s.store.Voices.Len(),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
