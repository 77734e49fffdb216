package store

import (
	"sync"
	"time"
)

// Pulse aggregates the house's overall heartbeat: how many visits have
// happened over the process lifetime and which rooms have seen activity
// recently.
type Pulse struct {
	mu           sync.Mutex
	now          func() time.Time
	totalVisits  int64
	activeRooms  map[string]time.Time
	lastActivity time.Time
}

func newPulse() *Pulse {
	return &Pulse{
		now:         time.Now,
		activeRooms: make(map[string]time.Time),
	}
}

// Record counts one visit and, when a room is named, marks it active.
func (p *Pulse) Record(room string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.totalVisits++
	p.lastActivity = now
	if room != "" {
		p.activeRooms[room] = now
	}
}

// PulseView is a point-in-time copy of the pulse state.
type PulseView struct {
	TotalVisits  int64
	ActiveRooms  map[string]time.Time
	LastActivity time.Time
}

// View returns a snapshot safe to read after the lock is released.
func (p *Pulse) View() PulseView {
	p.mu.Lock()
	defer p.mu.Unlock()

	rooms := make(map[string]time.Time, len(p.activeRooms))
	for room, at := range p.activeRooms {
		rooms[room] = at
	}
	return PulseView{
		TotalVisits:  p.totalVisits,
		ActiveRooms:  rooms,
		LastActivity: p.lastActivity,
	}
}

// pruneIdle drops rooms whose last activity is older than maxIdle and
// returns how many were removed.
func (p *Pulse) pruneIdle(maxIdle time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-maxIdle)
	removed := 0
	for room, at := range p.activeRooms {
		if at.Before(cutoff) {
			delete(p.activeRooms, room)
			removed++
		}
	}
	return removed
}
