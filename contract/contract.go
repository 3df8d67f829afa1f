//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chatdice/domain"
	"chatdice/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one participant's outbound channel, usually a websocket
// connection. Consume must be safe for concurrent use.
type EventSink interface {
	Consume(e event.SessionEvent) error
	Close() error
}

// Clock abstracts time.Now so that expiry, termination and sweep logic
// stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Completer is the text-completion capability. The transcript carries
// role-tagged turns ordered oldest first; generation configuration is
// owned by the implementation.
type Completer interface {
	Complete(ctx context.Context, transcript []domain.Turn) (string, error)
}

// ISessionCore is the engine surface driven by the session event source.
type ISessionCore interface {
	Connect(participantID string, sink EventSink)
	Disconnect(participantID string)
	EnqueueForMatch(participantID string, mode domain.Mode) error
	CancelMatch(participantID string)
	SendMessage(participantID, text string) error
	LeaveSession(participantID string)
	ReportParticipant(reporterID, reportedID, reason string) error
	Stats() domain.Stats
}

// SyntheticEvents is how the synthetic partner orchestrator reaches back
// into session handling without depending on the engine package.
type SyntheticEvents interface {
	// SyntheticMatched fires when the queue delay won the race: the
	// participant now owns a Conversation instead of a queue slot.
	SyntheticMatched(participantID string, p domain.Personality)
	// SyntheticDelivered hands over one generated line ready to send.
	SyntheticDelivered(participantID, text string)
	// SyntheticEnded fires on policy or staleness termination. farewell
	// is empty for a ghost exit.
	SyntheticEnded(participantID, reason, farewell string)
	// RealPartnerFound fires when the liveness poll claimed a real
	// partner; room already holds both members.
	RealPartnerFound(participantID string, room domain.Room)
}

// PartnerSource lets the preemption poll claim a real counterpart from
// the pair queue, and lets a synthetic match take its own queue slot.
// A successful claim removes the candidate and creates the room
// atomically; TakeQueued atomically removes the participant's own pair
// queue entry and reports whether it was still there.
type PartnerSource interface {
	ClaimPartner(participantID string) (domain.Room, bool)
	TakeQueued(participantID string) bool
}

// IdleDisconnector tears a participant down after sustained silence.
type IdleDisconnector interface {
	ForceDisconnect(participantID string)
}
