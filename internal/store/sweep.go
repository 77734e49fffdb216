package store

import (
	"log/slog"
	"time"

	"github.com/oddhouse/hearth/internal/metrics"
)

// Sweep timing. Rooms go quiet after a minute without a pulse; visitors
// fade after two minutes without a footprint.
const (
	SweepInterval    = 30 * time.Second
	RoomIdleAfter    = 60 * time.Second
	VisitorIdleAfter = 120 * time.Second
)

// Sweeper expires stale room activity and visitor presence on a fixed
// wall-clock interval, independent of request traffic. Pruning is pure
// deletion; nothing is archived.
type Sweeper struct {
	store    *Store
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(s *Store) *Sweeper {
	return &Sweeper{
		store:    s,
		interval: SweepInterval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately and then sweeps on every interval tick
// until Stop is called.
func (sw *Sweeper) Start() {
	sw.sweep()

	go func() {
		ticker := time.NewTicker(sw.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sw.sweep()
			case <-sw.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the background sweep goroutine.
func (sw *Sweeper) Stop() {
	close(sw.stopCh)
}

func (sw *Sweeper) sweep() {
	rooms := sw.store.Pulse.pruneIdle(RoomIdleAfter)
	visitors := sw.store.Footprints.pruneIdle(VisitorIdleAfter)

	metrics.SweptRooms.Add(float64(rooms))
	metrics.SweptVisitors.Add(float64(visitors))

	if rooms > 0 || visitors > 0 {
		slog.Info("sweep", "rooms", rooms, "visitors", visitors)
	}
}
