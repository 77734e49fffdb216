package store

import (
	"testing"
	"time"
)

func TestPulseRecord(t *testing.T) {
	p := newPulse()
	p.Record("garden")
	p.Record("")

	v := p.View()
	if v.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2", v.TotalVisits)
	}
	if _, ok := v.ActiveRooms["garden"]; !ok {
		t.Error("garden missing from active rooms")
	}
	if len(v.ActiveRooms) != 1 {
		t.Errorf("got %d active rooms, want 1 (empty room must not register)", len(v.ActiveRooms))
	}
	if v.LastActivity.IsZero() {
		t.Error("LastActivity not set")
	}
}

func TestPulseViewIsACopy(t *testing.T) {
	p := newPulse()
	p.Record("garden")

	v := p.View()
	delete(v.ActiveRooms, "garden")

	if _, ok := p.View().ActiveRooms["garden"]; !ok {
		t.Error("mutating a view changed the pulse state")
	}
}

func TestPulsePruneBoundary(t *testing.T) {
	p := newPulse()
	base := time.Now()

	p.now = func() time.Time { return base.Add(-61 * time.Second) }
	p.Record("stale-room")

	p.now = func() time.Time { return base.Add(-59 * time.Second) }
	p.Record("fresh-room")

	p.now = func() time.Time { return base }
	removed := p.pruneIdle(RoomIdleAfter)

	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	v := p.View()
	if _, ok := v.ActiveRooms["stale-room"]; ok {
		t.Error("room idle 61s survived the prune")
	}
	if _, ok := v.ActiveRooms["fresh-room"]; !ok {
		t.Error("room idle 59s was pruned")
	}
	if v.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2 (prune must not touch the counter)", v.TotalVisits)
	}
}
