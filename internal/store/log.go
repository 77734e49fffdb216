package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry wraps a feature payload with the metadata stamped server-side on
// append. Author is the client-supplied visitor id and is trusted for
// nothing beyond self-exclusion on reads.
type Entry[T any] struct {
	ID     string
	Author string
	At     time.Time
	Item   T
}

// Log is a fixed-capacity append log. At capacity the oldest entry is
// overwritten in place, so both append and eviction are O(1).
type Log[T any] struct {
	mu    sync.Mutex
	now   func() time.Time
	buf   []Entry[T]
	head  int // index of the oldest entry
	count int
}

// NewLog creates an empty log holding at most capacity entries.
func NewLog[T any](capacity int) *Log[T] {
	return &Log[T]{
		now: time.Now,
		buf: make([]Entry[T], capacity),
	}
}

// Append stamps item with an id, author, and the current time, and stores
// it, evicting the oldest entry if the log is full. Returns the number of
// entries retained after the append.
func (l *Log[T]) Append(author string, item T) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry[T]{
		ID:     uuid.NewString(),
		Author: author,
		At:     l.now(),
		Item:   item,
	}
	if l.count < len(l.buf) {
		l.buf[(l.head+l.count)%len(l.buf)] = e
		l.count++
	} else {
		l.buf[l.head] = e
		l.head = (l.head + 1) % len(l.buf)
	}
	return l.count
}

// Len returns the number of entries currently retained.
func (l *Log[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Recent returns up to n of the newest entries not authored by
// excludeAuthor, oldest first.
func (l *Log[T]) Recent(n int, excludeAuthor string) []Entry[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry[T], 0, n)
	for i := l.count - 1; i >= 0 && len(out) < n; i-- {
		e := l.buf[(l.head+i)%len(l.buf)]
		if e.Author == excludeAuthor {
			continue
		}
		out = append(out, e)
	}
	// Walked newest to oldest; flip back to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n entries not authored by excludeAuthor, chosen
// uniformly at random so readers don't always surface the same items.
func (l *Log[T]) Sample(n int, excludeAuthor string) []Entry[T] {
	return l.SampleWhere(n, func(e Entry[T]) bool {
		return e.Author != excludeAuthor
	})
}

// SampleWhere returns up to n random entries matching keep.
func (l *Log[T]) SampleWhere(n int, keep func(Entry[T]) bool) []Entry[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	pool := make([]Entry[T], 0, l.count)
	for i := 0; i < l.count; i++ {
		e := l.buf[(l.head+i)%len(l.buf)]
		if keep(e) {
			pool = append(pool, e)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
