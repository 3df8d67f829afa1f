// Package activity enforces per-participant liveness and rate
// constraints: a sliding-window send limit, an inactivity timer that
// forcibly disconnects silent participants, and silence accounting
// across sessions.
package activity

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chatdice/contract"
	"chatdice/errors"
)

const (
	// RateLimit is the number of accepted sends per window.
	RateLimit = 20
	// RateWindow is the fixed sliding-window length.
	RateWindow = time.Minute
	// IdleTimeout is how long a live participant may stay silent before
	// being forcibly disconnected.
	IdleTimeout = 150 * time.Second
)

type rateWindow struct {
	count       int
	windowStart time.Time
}

type record struct {
	messagesSentInSession   int
	consecutiveSilentCount  int
}

// idleTimer carries the generation of its arming so a fire that lost a
// concurrent rearm can recognize itself as stale.
type idleTimer struct {
	timer *time.Timer
	gen   uint64
}

type Monitor struct {
	mu      sync.Mutex
	log     *slog.Logger
	clock   contract.Clock
	idle    contract.IdleDisconnector
	windows map[string]*rateWindow
	records map[string]*record
	timers  map[string]*idleTimer
	genSeq  uint64
}

func NewMonitor(log *slog.Logger, clock contract.Clock, idle contract.IdleDisconnector) *Monitor {
	return &Monitor{
		log:     log,
		clock:   clock,
		idle:    idle,
		windows: make(map[string]*rateWindow),
		records: make(map[string]*record),
		timers:  make(map[string]*idleTimer),
	}
}

// AllowSend applies the sliding-window rate check. A rejected send
// leaves the window untouched; only window expiry resets it.
func (m *Monitor) AllowSend(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	w, ok := m.windows[id]
	if !ok {
		w = &rateWindow{windowStart: now}
		m.windows[id] = w
	}
	if now.Sub(w.windowStart) > RateWindow {
		w.count = 0
		w.windowStart = now
	}
	if w.count >= RateLimit {
		return errors.ErrRateExceeded
	}
	w.count++
	return nil
}

// Attach arms the inactivity timer for a participant entering a live
// session. An existing timer is replaced.
func (m *Monitor) Attach(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.armLocked(id)
}

// Touch rearms the inactivity timer on inbound activity. Cancel and
// rearm happen under the lock so a concurrent fire observes either the
// old timer or the new one, never both.
func (m *Monitor) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.timers[id]; !ok {
		return
	}
	m.armLocked(id)
}

func (m *Monitor) armLocked(id string) {
	if t, ok := m.timers[id]; ok {
		t.timer.Stop()
	}
	m.genSeq++
	entry := &idleTimer{gen: m.genSeq}
	entry.timer = time.AfterFunc(IdleTimeout, func() { m.fire(id, entry.gen) })
	m.timers[id] = entry
}

// fire disconnects the participant only when the callback still belongs
// to the current arming. A stale fire whose timer was swapped out by a
// concurrent Touch observes a newer generation and is a no-op.
func (m *Monitor) fire(id string, gen uint64) {
	m.mu.Lock()
	entry, ok := m.timers[id]
	if !ok || entry.gen != gen {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)
	m.mu.Unlock()

	m.log.Info(fmt.Sprintf("Participant %s idle for %s, disconnecting", id, IdleTimeout))
	m.idle.ForceDisconnect(id)
}

// Detach stops the inactivity timer when the session ends.
func (m *Monitor) Detach(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.timers[id]; ok {
		t.timer.Stop()
		delete(m.timers, id)
	}
}

// StartAttempt resets the consecutive-silent-sessions counter:
// requesting a new match counts as engagement forgiveness.
func (m *Monitor) StartAttempt(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordLocked(id).consecutiveSilentCount = 0
}

// RecordSend accounts one accepted message.
func (m *Monitor) RecordSend(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.recordLocked(id)
	r.messagesSentInSession++
	r.consecutiveSilentCount = 0
}

// EndSession applies silence accounting: a session torn down with zero
// sent messages increments the silent counter. The counter is tracked
// but no policy consumes it yet.
func (m *Monitor) EndSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.recordLocked(id)
	if r.messagesSentInSession == 0 {
		r.consecutiveSilentCount++
	}
	r.messagesSentInSession = 0
}

// SilentSessions exposes the tracked counter.
func (m *Monitor) SilentSessions(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordLocked(id).consecutiveSilentCount
}

// Forget clears every record and timer for a disconnected participant.
func (m *Monitor) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.timers[id]; ok {
		t.timer.Stop()
		delete(m.timers, id)
	}
	delete(m.windows, id)
	delete(m.records, id)
}

func (m *Monitor) recordLocked(id string) *record {
	r, ok := m.records[id]
	if !ok {
		r = &record{}
		m.records[id] = r
	}
	return r
}
