// Package event defines the session events delivered to participants
// through the transport. Events are addressed to a single participant;
// room-wide notifications are produced by fanning out over the members.
package event

import (
	"time"

	"chatdice/domain"
)

// SessionEvent is anything the engine may push to a connected participant.
type SessionEvent interface {
	EventName() string
}

// Queued tells a participant they are waiting for a match.
type Queued struct {
	Mode     domain.Mode `json:"mode"`
	Position int         `json:"position"`
	Message  string      `json:"message"`
}

func (Queued) EventName() string { return "queued" }

// Matched tells a participant a room is ready. A synthetic match is
// delivered through the exact same event as a real one.
type Matched struct {
	RoomID      string        `json:"room_id"`
	Mode        domain.Mode   `json:"mode"`
	MemberCount int           `json:"member_count"`
	Color       *domain.Color `json:"color,omitempty"` // group mode only
}

func (Matched) EventName() string { return "matched" }

// Message is one chat line, echoed to every member of the room
// including the sender.
type Message struct {
	RoomID   string        `json:"room_id"`
	SenderID string        `json:"sender_id"`
	Content  string        `json:"content"`
	SentAt   time.Time     `json:"sent_at"`
	Color    *domain.Color `json:"color,omitempty"`
}

func (Message) EventName() string { return "message" }

// PartnerLeft notifies remaining members that someone left the room.
type PartnerLeft struct {
	RoomID    string `json:"room_id"`
	MemberID  string `json:"member_id"`
	Remaining int    `json:"remaining"`
}

func (PartnerLeft) EventName() string { return "partner-left" }

// ChatEnded closes the session from the participant's point of view.
type ChatEnded struct {
	Reason string `json:"reason"`
}

func (ChatEnded) EventName() string { return "chat-ended" }

// ReportReceived acknowledges a moderation report.
type ReportReceived struct {
	Message string `json:"message"`
}

func (ReportReceived) EventName() string { return "report-received" }

// Error surfaces a rejected operation (validation, rate limiting).
type Error struct {
	Message string `json:"message"`
}

func (Error) EventName() string { return "error" }
