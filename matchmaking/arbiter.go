// Package matchmaking owns the pairwise and group matching queues and the
// room lifecycle. All state is in memory; every operation is a pure
// mutation guarded by a single mutex so that a participant can never be
// double-enqueued or claimed by two matches at once.
package matchmaking

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chatdice/contract"
	"chatdice/domain"
	"chatdice/errors"
)

// entryTTL is how long a queue entry stays eligible before the sweep
// reaps it.
const entryTTL = time.Hour

type queueEntry struct {
	participantID string
	enqueuedAt    time.Time
}

// LeaveResult is the snapshot handed back for notifications after a
// participant left their room.
type LeaveResult struct {
	Room      domain.Room
	Dissolved bool
}

type Arbiter struct {
	mu         sync.Mutex
	log        *slog.Logger
	clock      contract.Clock
	pairQueue  []queueEntry
	groupQueue []queueEntry
	rooms      map[string]*domain.Room
	memberRoom map[string]string
	recency    *recencyLedger
}

func NewArbiter(log *slog.Logger, clock contract.Clock) *Arbiter {
	return &Arbiter{
		log:        log,
		clock:      clock,
		rooms:      make(map[string]*domain.Room),
		memberRoom: make(map[string]string),
		recency:    newRecencyLedger(),
	}
}

// EnqueuePair tries an immediate pairing: the queue is scanned head to
// tail for the first non-expired candidate not present in the requester's
// recency ledger. When one is found it is removed and a pair room is
// created; otherwise the requester is appended. The returned position is
// only meaningful when room is nil.
func (a *Arbiter) EnqueuePair(id string) (*domain.Room, int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkEnqueueable(id); err != nil {
		return nil, 0, err
	}

	now := a.clock.Now()
	for i, candidate := range a.pairQueue {
		if now.Sub(candidate.enqueuedAt) >= entryTTL {
			continue
		}
		if a.recency.Recent(id, candidate.participantID) {
			continue
		}
		a.pairQueue = append(a.pairQueue[:i], a.pairQueue[i+1:]...)
		room := a.createRoom(domain.ModePair, []string{candidate.participantID, id})
		return lo.ToPtr(room.Snapshot()), 0, nil
	}

	a.pairQueue = append(a.pairQueue, queueEntry{participantID: id, enqueuedAt: now})
	return nil, len(a.pairQueue), nil
}

// EnqueueGroup appends the requester; once the queue holds GroupRoomSize
// entries the earliest ten are drained, expired entries are discarded and
// a group room is created if at least two survive. Otherwise the
// survivors are re-enqueued at the tail, which can under-fill a later
// room and subtly break FIFO fairness; this mirrors the accepted
// approximation of the original drain.
func (a *Arbiter) EnqueueGroup(id string) (*domain.Room, int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkEnqueueable(id); err != nil {
		return nil, 0, err
	}

	now := a.clock.Now()
	a.groupQueue = append(a.groupQueue, queueEntry{participantID: id, enqueuedAt: now})
	if len(a.groupQueue) < domain.GroupRoomSize {
		return nil, len(a.groupQueue), nil
	}

	drained := a.groupQueue[:domain.GroupRoomSize]
	a.groupQueue = a.groupQueue[domain.GroupRoomSize:]

	survivors := lo.Filter(drained, func(e queueEntry, _ int) bool {
		return now.Sub(e.enqueuedAt) < entryTTL
	})
	if len(survivors) < 2 {
		a.groupQueue = append(a.groupQueue, survivors...)
		return nil, len(a.groupQueue), nil
	}

	members := lo.Map(survivors, func(e queueEntry, _ int) string { return e.participantID })
	room := a.createRoom(domain.ModeGroup, members)
	return lo.ToPtr(room.Snapshot()), 0, nil
}

// ClaimPartner is the preemption hook used while a synthetic fallback is
// pending: it atomically removes the first eligible queued candidate
// other than id and creates a pair room holding both.
func (a *Arbiter) ClaimPartner(id string) (domain.Room, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	for i, candidate := range a.pairQueue {
		if candidate.participantID == id {
			continue
		}
		if now.Sub(candidate.enqueuedAt) >= entryTTL {
			continue
		}
		if a.recency.Recent(id, candidate.participantID) {
			continue
		}
		a.pairQueue = append(a.pairQueue[:i], a.pairQueue[i+1:]...)
		a.removeFromQueuesLocked(id)
		room := a.createRoom(domain.ModePair, []string{candidate.participantID, id})
		return room.Snapshot(), true
	}
	return domain.Room{}, false
}

// TakeQueued removes the participant's own pair queue entry and reports
// whether it was still present. A synthetic match must win this before
// claiming the participant, so a real pairing and a timer fire can never
// both take the same slot.
func (a *Arbiter) TakeQueued(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, candidate := range a.pairQueue {
		if candidate.participantID == id {
			a.pairQueue = append(a.pairQueue[:i], a.pairQueue[i+1:]...)
			return true
		}
	}
	return false
}

// createRoom registers the room, assigns cyclic palette colors for group
// mode and records pairwise recency for pair mode only.
func (a *Arbiter) createRoom(mode domain.Mode, members []string) *domain.Room {
	room := &domain.Room{
		ID:        uuid.NewString(),
		Mode:      mode,
		Members:   members,
		CreatedAt: a.clock.Now(),
	}
	if mode == domain.ModeGroup {
		room.Colors = make(map[string]domain.Color, len(members))
		for i, id := range members {
			room.Colors[id] = domain.Palette[i%len(domain.Palette)]
		}
	} else {
		a.recency.Record(members[0], members[1])
	}

	a.rooms[room.ID] = room
	for _, id := range members {
		a.memberRoom[id] = room.ID
	}
	a.log.Info(fmt.Sprintf("Created %s room %s with %d members", mode, room.ID, len(members)))
	return room
}

// Leave removes the participant from their room, dissolving it once
// membership drops below viability (pair <2, group 0).
func (a *Arbiter) Leave(id string) (LeaveResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	roomID, ok := a.memberRoom[id]
	if !ok {
		return LeaveResult{}, false
	}
	room := a.rooms[roomID]
	room.Remove(id)
	delete(a.memberRoom, id)

	result := LeaveResult{Room: room.Snapshot()}
	if !room.Viable() {
		for _, member := range room.Members {
			delete(a.memberRoom, member)
		}
		delete(a.rooms, roomID)
		result.Dissolved = true
		a.log.Info(fmt.Sprintf("Deleted room %s", roomID))
	}
	return result, true
}

// RemoveFromQueues drops any pending queue entry for the participant.
// Safe to call whether or not one exists.
func (a *Arbiter) RemoveFromQueues(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeFromQueuesLocked(id)
}

func (a *Arbiter) removeFromQueuesLocked(id string) {
	a.pairQueue = lo.Filter(a.pairQueue, func(e queueEntry, _ int) bool {
		return e.participantID != id
	})
	a.groupQueue = lo.Filter(a.groupQueue, func(e queueEntry, _ int) bool {
		return e.participantID != id
	})
}

// Forget additionally clears the recency history, for disconnects.
func (a *Arbiter) Forget(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeFromQueuesLocked(id)
	a.recency.Forget(id)
}

// RoomOf returns a snapshot of the participant's active room.
func (a *Arbiter) RoomOf(id string) (domain.Room, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	roomID, ok := a.memberRoom[id]
	if !ok {
		return domain.Room{}, false
	}
	return a.rooms[roomID].Snapshot(), true
}

// Queued reports whether the participant currently holds a queue entry.
func (a *Arbiter) Queued(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queuedLocked(id)
}

func (a *Arbiter) queuedLocked(id string) bool {
	match := func(e queueEntry) bool { return e.participantID == id }
	return lo.ContainsBy(a.pairQueue, match) || lo.ContainsBy(a.groupQueue, match)
}

func (a *Arbiter) checkEnqueueable(id string) error {
	if a.queuedLocked(id) {
		return errors.ErrAlreadyQueued
	}
	if _, inRoom := a.memberRoom[id]; inRoom {
		return errors.ErrAlreadyInSession
	}
	return nil
}

// SweepExpired purges queue entries older than the entry TTL and returns
// how many were dropped. Driven by the periodic queue sweep worker.
func (a *Arbiter) SweepExpired() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	fresh := func(e queueEntry, _ int) bool { return now.Sub(e.enqueuedAt) < entryTTL }

	before := len(a.pairQueue) + len(a.groupQueue)
	a.pairQueue = lo.Filter(a.pairQueue, fresh)
	a.groupQueue = lo.Filter(a.groupQueue, fresh)
	removed := before - len(a.pairQueue) - len(a.groupQueue)
	if removed > 0 {
		a.log.Info(fmt.Sprintf("Swept %d expired queue entries", removed))
	}
	return removed
}

// Stats reports queue depths, active room count and seated participants.
func (a *Arbiter) Stats() (pairDepth, groupDepth, rooms, members int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pairQueue), len(a.groupQueue), len(a.rooms), len(a.memberRoom)
}
