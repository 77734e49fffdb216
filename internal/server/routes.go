package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/oddhouse/hearth/internal/metrics"
	"github.com/oddhouse/hearth/internal/store"
)

// visitorID returns the client-supplied identity header. It is opaque,
// unauthenticated, and used only to keep a visitor's own contributions out
// of their own reads.
func visitorID(r *http.Request) string {
	if id := r.Header.Get("X-Visitor-Id"); id != "" {
		return id
	}
	return "anonymous"
}

func ageSeconds(at time.Time) int64 {
	age := int64(time.Since(at).Seconds())
	if age < 0 {
		age = 0
	}
	return age
}

// --- seeds ---

func (s *Server) handlePlantSeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room string `json:"room"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Room == "" {
		http.Error(w, `{"error":"room required"}`, http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, `{"error":"text required"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Text) > 500 {
		http.Error(w, `{"error":"text too long (max 500)"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Seeds.Append(visitorID(r), store.Seed{Room: req.Room, Text: req.Text})
	metrics.CollectionSize.WithLabelValues("seeds").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalSeeds": total})
}

func (s *Server) handleListSeeds(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	caller := visitorID(r)

	entries := s.store.Seeds.SampleWhere(5, func(e store.Entry[store.Seed]) bool {
		if e.Author == caller {
			return false
		}
		return room == "" || e.Item.Room == room
	})

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"room":      e.Item.Room,
			"text":      e.Item.Text,
			"plantedAt": e.At.UnixMilli(),
			"isOther":   true,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// --- pulse ---

func (s *Server) handlePulse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room string `json:"room"`
	}
	// An empty body is a plain heartbeat with no room attached.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	s.store.Pulse.Record(req.Room)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handlePulseState(w http.ResponseWriter, r *http.Request) {
	pv := s.store.Pulse.View()

	rooms := make(map[string]int64, len(pv.ActiveRooms))
	for room, at := range pv.ActiveRooms {
		rooms[room] = at.UnixMilli()
	}

	resp := map[string]any{
		"totalVisits": pv.TotalVisits,
		"activeRooms": rooms,
		"seedCount":   s.store.Seeds.Len(),
	}
	if pv.LastActivity.IsZero() {
		resp["lastActivity"] = nil
	} else {
		resp["lastActivity"] = pv.LastActivity.UnixMilli()
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- footprints ---

func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room string `json:"room"`
		From string `json:"from"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Room == "" {
		http.Error(w, `{"error":"room required"}`, http.StatusBadRequest)
		return
	}

	s.store.Footprints.Record(req.Room, req.From, visitorID(r))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleFootprintState(w http.ResponseWriter, r *http.Request) {
	v := s.store.Footprints.View()
	writeJSON(w, http.StatusOK, map[string]any{
		"rooms":            v.Rooms,
		"edges":            v.Edges,
		"activeVisitors":   v.ActiveVisitors,
		"activeRoomCounts": v.ActiveRoomCounts,
	})
}

// --- instrument ---

func (s *Server) handlePlayPhrase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes []float64 `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Notes) == 0 {
		http.Error(w, `{"error":"notes required"}`, http.StatusBadRequest)
		return
	}
	if len(req.Notes) > 20 {
		http.Error(w, `{"error":"too many notes (max 20)"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Phrases.Append(visitorID(r), store.Phrase{Notes: req.Notes})
	metrics.CollectionSize.WithLabelValues("phrases").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalNotes": total})
}

func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Phrases.Recent(10, visitorID(r))

	phrases := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		phrases = append(phrases, map[string]any{
			"notes": e.Item.Notes,
			"age":   ageSeconds(e.At),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"phrases":    phrases,
		"totalNotes": s.store.Phrases.Len(),
	})
}

// --- sketchpad ---

func (s *Server) handleDrawStroke(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points []store.Point `json:"points"`
		Hue    float64       `json:"hue"`
		Width  float64       `json:"width"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Points) < 2 || len(req.Points) > 200 {
		http.Error(w, `{"error":"points must contain 2-200 entries"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Strokes.Append(visitorID(r), store.Stroke{
		Points: req.Points,
		Hue:    req.Hue,
		Width:  req.Width,
	})
	metrics.CollectionSize.WithLabelValues("strokes").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalStrokes": total})
}

func (s *Server) handleListStrokes(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Strokes.Recent(15, visitorID(r))

	strokes := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		strokes = append(strokes, map[string]any{
			"points": e.Item.Points,
			"hue":    e.Item.Hue,
			"width":  e.Item.Width,
			"age":    ageSeconds(e.At),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"strokes":      strokes,
		"totalStrokes": s.store.Strokes.Len(),
	})
}

// --- seance ---

func (s *Server) handleRecordExchange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, `{"error":"question required"}`, http.StatusBadRequest)
		return
	}
	if req.Response == "" {
		http.Error(w, `{"error":"response required"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Question) > 500 {
		http.Error(w, `{"error":"question too long (max 500)"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Response) > 500 {
		http.Error(w, `{"error":"response too long (max 500)"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Exchanges.Append(visitorID(r), store.Exchange{
		Question: req.Question,
		Response: req.Response,
	})
	metrics.CollectionSize.WithLabelValues("exchanges").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalExchanges": total})
}

func (s *Server) handleListExchanges(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Exchanges.Sample(5, visitorID(r))

	exchanges := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		exchanges = append(exchanges, map[string]any{
			"question": e.Item.Question,
			"response": e.Item.Response,
			"age":      ageSeconds(e.At),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exchanges":      exchanges,
		"totalExchanges": s.store.Exchanges.Len(),
	})
}

// --- radio ---

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Freq *float64 `json:"freq"`
		Text string   `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Freq == nil {
		http.Error(w, `{"error":"freq required"}`, http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, `{"error":"text required"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Text) > 300 {
		http.Error(w, `{"error":"text too long (max 300)"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Broadcasts.Append(visitorID(r), store.Broadcast{
		Freq: *req.Freq,
		Text: req.Text,
	})
	metrics.CollectionSize.WithLabelValues("broadcasts").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalBroadcasts": total})
}

func (s *Server) handleListBroadcasts(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Broadcasts.Recent(8, visitorID(r))

	broadcasts := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		broadcasts = append(broadcasts, map[string]any{
			"freq": e.Item.Freq,
			"text": e.Item.Text,
			"age":  ageSeconds(e.At),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"broadcasts":      broadcasts,
		"totalBroadcasts": s.store.Broadcasts.Len(),
	})
}

// --- choir ---

func (s *Server) handleAddVoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X    *float64 `json:"x"`
		Y    *float64 `json:"y"`
		Freq *float64 `json:"freq"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.X == nil {
		http.Error(w, `{"error":"x required"}`, http.StatusBadRequest)
		return
	}
	if req.Y == nil {
		http.Error(w, `{"error":"y required"}`, http.StatusBadRequest)
		return
	}
	if req.Freq == nil {
		http.Error(w, `{"error":"freq required"}`, http.StatusBadRequest)
		return
	}

	total := s.store.Voices.Append(visitorID(r), store.Voice{
		X:    *req.X,
		Y:    *req.Y,
		Freq: *req.Freq,
	})
	metrics.CollectionSize.WithLabelValues("voices").Set(float64(total))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "totalVoices": total})
}

func (s *Server) handleListVoices(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Voices.Recent(12, visitorID(r))

	voices := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		voices = append(voices, map[string]any{
			"x":    e.Item.X,
			"y":    e.Item.Y,
			"freq": e.Item.Freq,
			"age":  ageSeconds(e.At),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"voices":      voices,
		"totalVoices": s.store.Voices.Len(),
	})
}

// --- single-text rooms ---

// textConfig describes one of the rooms whose contributions are a single
// text field.
type textConfig struct {
	collection string // metrics label
	list       string // response key for the item list
	total      string // response key for the count
	maxLen     int    // rune limit on the text
	truncate   bool   // truncate at maxLen instead of rejecting
	listN      int    // read size
	sample     bool   // sample randomly instead of most-recent
}

func textRoutes(r chi.Router, path string, log *store.Log[store.Text], cfg textConfig) {
	r.Post(path, textPostHandler(log, cfg))
	r.Get(path, textGetHandler(log, cfg))
}

func textPostHandler(log *store.Log[store.Text], cfg textConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, `{"error":"text required"}`, http.StatusBadRequest)
			return
		}

		text := req.Text
		if utf8.RuneCountInString(text) > cfg.maxLen {
			if !cfg.truncate {
				http.Error(w, fmt.Sprintf(`{"error":"text too long (max %d)"}`, cfg.maxLen), http.StatusBadRequest)
				return
			}
			text = string([]rune(text)[:cfg.maxLen])
		}

		total := log.Append(visitorID(r), store.Text{Text: text})
		metrics.CollectionSize.WithLabelValues(cfg.collection).Set(float64(total))

		writeJSON(w, http.StatusOK, map[string]any{"ok": true, cfg.total: total})
	}
}

func textGetHandler(log *store.Log[store.Text], cfg textConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []store.Entry[store.Text]
		if cfg.sample {
			entries = log.Sample(cfg.listN, visitorID(r))
		} else {
			entries = log.Recent(cfg.listN, visitorID(r))
		}

		items := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			items = append(items, map[string]any{
				"text": e.Item.Text,
				"age":  ageSeconds(e.At),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			cfg.list:  items,
			cfg.total: log.Len(),
		})
	}
}
