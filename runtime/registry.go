package runtime

import (
	"sync"

	"chatdice/contract"
)

type Set map[string]struct{}

// Registry tracks live connections and room membership for fan-out.
// Room membership here mirrors the matchmaking state; the registry only
// answers "which sinks receive this event".
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]contract.EventSink // map participant -> Sink
	roomMembers map[string]Set                // map room -> participants
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[string]contract.EventSink),
		roomMembers: make(map[string]Set),
	}
}

// Subscribe registers a participant's active connection.
func (r *Registry) Subscribe(participantID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[participantID] = sink
}

// Unsubscribe removes a participant's connection. Their room membership
// is cleaned up separately when the room itself changes.
func (r *Registry) Unsubscribe(participantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, participantID)
}

// SinkOf resolves a participant's connection, if any.
func (r *Registry) SinkOf(participantID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sessions[participantID]
	return sink, ok
}

// JoinRoom seats every member in the room's fan-out set, initializing
// the set on first use.
func (r *Registry) JoinRoom(roomID string, members ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomMembers[roomID]; !ok {
		r.roomMembers[roomID] = make(Set)
	}
	for _, member := range members {
		r.roomMembers[roomID][member] = struct{}{}
	}
}

// LeaveRoom unseats one member. Empty sets are removed to prevent the
// room map from growing over time.
func (r *Registry) LeaveRoom(participantID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.roomMembers[roomID]; ok {
		delete(members, participantID)
		if len(members) == 0 {
			delete(r.roomMembers, roomID)
		}
	}
}

// DropRoom removes the whole fan-out set, for dissolved rooms.
func (r *Registry) DropRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roomMembers, roomID)
}

// GetSinksForRoom retrieves all active communication channels for a specific room.
// It performs a two-step lookup:
// 1. Identifies participant IDs associated with the room via roomMembers.
// 2. Resolves those IDs into actual EventSinks using the sessions map.
//
// Returns nil if the room doesn't exist or has no connected members.
func (r *Registry) GetSinksForRoom(roomID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[roomID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for participantID := range members {
		if sink, exists := r.sessions[participantID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Connected is the number of live sessions.
func (r *Registry) Connected() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
