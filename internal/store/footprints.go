package store

import (
	"sync"
	"time"
)

type roomFootprint struct {
	visits    int64
	visitors  map[string]struct{}
	lastVisit time.Time
}

type edgeFootprint struct {
	traversals int64
	visitors   map[string]struct{}
}

type presence struct {
	room     string
	lastSeen time.Time
}

// Footprints accumulates where visitors have been: per-room visit counts,
// per-edge traversal counts, and who is currently present. Visitor ids are
// kept only inside the unique-visitor sets and the presence map; reads
// expose counts and set sizes, never identities.
type Footprints struct {
	mu     sync.Mutex
	now    func() time.Time
	rooms  map[string]*roomFootprint
	edges  map[string]*edgeFootprint
	active map[string]presence
}

func newFootprints() *Footprints {
	return &Footprints{
		now:    time.Now,
		rooms:  make(map[string]*roomFootprint),
		edges:  make(map[string]*edgeFootprint),
		active: make(map[string]presence),
	}
}

// EdgeKey canonicalizes an unordered room pair so A→B and B→A accumulate
// into the same edge.
func EdgeKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Record counts a visit to room by visitor, optionally counts a traversal
// of the from→room edge, and refreshes the visitor's presence.
func (f *Footprints) Record(room, from, visitor string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()

	rf := f.rooms[room]
	if rf == nil {
		rf = &roomFootprint{visitors: make(map[string]struct{})}
		f.rooms[room] = rf
	}
	rf.visits++
	rf.visitors[visitor] = struct{}{}
	rf.lastVisit = now

	if from != "" && from != room {
		key := EdgeKey(from, room)
		ef := f.edges[key]
		if ef == nil {
			ef = &edgeFootprint{visitors: make(map[string]struct{})}
			f.edges[key] = ef
		}
		ef.traversals++
		ef.visitors[visitor] = struct{}{}
	}

	f.active[visitor] = presence{room: room, lastSeen: now}
}

// RoomView is the anonymized aggregate for one room.
type RoomView struct {
	Visits         int64 `json:"visits"`
	UniqueVisitors int   `json:"uniqueVisitors"`
	LastVisit      int64 `json:"lastVisit"`
}

// EdgeView is the anonymized aggregate for one room pair.
type EdgeView struct {
	Traversals     int64 `json:"traversals"`
	UniqueVisitors int   `json:"uniqueVisitors"`
}

// FootprintView is a point-in-time copy of all footprint aggregates.
type FootprintView struct {
	Rooms            map[string]RoomView
	Edges            map[string]EdgeView
	ActiveVisitors   int
	ActiveRoomCounts map[string]int
}

// View returns counts and set sizes only.
func (f *Footprints) View() FootprintView {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := FootprintView{
		Rooms:            make(map[string]RoomView, len(f.rooms)),
		Edges:            make(map[string]EdgeView, len(f.edges)),
		ActiveVisitors:   len(f.active),
		ActiveRoomCounts: make(map[string]int),
	}
	for room, rf := range f.rooms {
		v.Rooms[room] = RoomView{
			Visits:         rf.visits,
			UniqueVisitors: len(rf.visitors),
			LastVisit:      rf.lastVisit.UnixMilli(),
		}
	}
	for key, ef := range f.edges {
		v.Edges[key] = EdgeView{
			Traversals:     ef.traversals,
			UniqueVisitors: len(ef.visitors),
		}
	}
	for _, p := range f.active {
		v.ActiveRoomCounts[p.room]++
	}
	return v
}

// pruneIdle drops visitors whose presence is older than maxIdle and
// returns how many were removed. Room and edge footprints are never
// deleted.
func (f *Footprints) pruneIdle(maxIdle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-maxIdle)
	removed := 0
	for visitor, p := range f.active {
		if p.lastSeen.Before(cutoff) {
			delete(f.active, visitor)
			removed++
		}
	}
	return removed
}
