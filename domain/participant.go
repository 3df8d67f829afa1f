// Package domain contains core concepts of the matching engine.
// This file defines Participant identity and matching modes.
// No runtime, network, or UI logic should be added here.
package domain

// Participant is one endpoint of a session. The id is an opaque
// per-connection identifier, nothing about it is persisted.
type Participant struct {
	ID string
}

// Mode is the matching cardinality requested by a participant.
type Mode string

const (
	// ModePair matches exactly two participants.
	ModePair Mode = "pair"
	// ModeGroup matches up to GroupRoomSize participants.
	ModeGroup Mode = "group"
)

func (m Mode) Valid() bool {
	return m == ModePair || m == ModeGroup
}
