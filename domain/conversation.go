package domain

import "time"

// Role tags a transcript turn for the completion provider.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a conversation transcript.
// Degraded marks a turn whose text came from the fallback set after
// the completion provider exhausted its retries.
type Turn struct {
	Role     Role
	Content  string
	At       time.Time
	Degraded bool
}

// Conversation is a synthetic session between one real participant and
// an AI-driven counterpart. At most one active Conversation exists per
// participant at any time.
type Conversation struct {
	ParticipantID string
	Personality   Personality
	Transcript    []Turn
	TurnCount     int // inbound participant turns, drives the termination policy
	StartedAt     time.Time
	LastActivity  time.Time
}

func NewConversation(participantID string, p Personality, now time.Time) *Conversation {
	return &Conversation{
		ParticipantID: participantID,
		Personality:   p,
		Transcript:    []Turn{{Role: RoleSystem, Content: p.Prompt, At: now}},
		StartedAt:     now,
		LastActivity:  now,
	}
}

func (c *Conversation) AppendUser(content string, now time.Time) {
	c.Transcript = append(c.Transcript, Turn{Role: RoleUser, Content: content, At: now})
	c.TurnCount++
	c.LastActivity = now
}

func (c *Conversation) AppendAssistant(content string, now time.Time, degraded bool) {
	c.Transcript = append(c.Transcript, Turn{Role: RoleAssistant, Content: content, At: now, Degraded: degraded})
	c.LastActivity = now
}

func (c *Conversation) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.StartedAt)
}

func (c *Conversation) Idle(now time.Time) time.Duration {
	return now.Sub(c.LastActivity)
}
