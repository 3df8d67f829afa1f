package runtime

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"chatdice/activity"
	"chatdice/contract"
	"chatdice/domain"
	"chatdice/domain/event"
	"chatdice/errors"
	"chatdice/matchmaking"
	"chatdice/observability"
	"chatdice/repositories"
	"chatdice/synthetic"
)

var _ contract.ISessionCore = (*Engine)(nil)
var _ contract.SyntheticEvents = (*Engine)(nil)
var _ contract.IdleDisconnector = (*Engine)(nil)

// synthSession is the engine-side face of a synthetic conversation: a
// fabricated room and partner identity so that the events a client sees
// are indistinguishable from a real pair match.
type synthSession struct {
	roomID    string
	partnerID string
}

// Engine is the single composition point: every inbound session
// operation lands here and every outbound event leaves from here. It
// owns the matchmaking arbiter, the activity monitor and the synthetic
// orchestrator; the transport only sees ISessionCore.
type Engine struct {
	log          *slog.Logger
	clock        contract.Clock
	registry     *Registry
	arbiter      *matchmaking.Arbiter
	monitor      *activity.Monitor
	orchestrator *synthetic.Orchestrator
	messages     repositories.IMessageRepository
	reports      repositories.IReportRepository

	mu    sync.Mutex
	synth map[string]synthSession
}

// NewEngine wires the session core. The monitor and orchestrator are
// built here because they call back into the engine (idle disconnects,
// synthetic events).
func NewEngine(
	log *slog.Logger,
	clock contract.Clock,
	rng *rand.Rand,
	syntheticCfg synthetic.Config,
	catalog *synthetic.Catalog,
	completer contract.Completer,
	messages repositories.IMessageRepository,
	reports repositories.IReportRepository,
) *Engine {
	engine := &Engine{
		log:      log,
		clock:    clock,
		registry: NewRegistry(),
		arbiter:  matchmaking.NewArbiter(log, clock),
		messages: messages,
		reports:  reports,
		synth:    make(map[string]synthSession),
	}
	engine.monitor = activity.NewMonitor(log, clock, engine)
	engine.orchestrator = synthetic.NewOrchestrator(
		log, clock, rng, syntheticCfg, catalog, completer, engine.arbiter, engine,
	)
	return engine
}

// Arbiter exposes the matchmaking state for the sweep workers.
func (e *Engine) Arbiter() *matchmaking.Arbiter { return e.arbiter }

// Orchestrator exposes the synthetic state for the poll and sweep workers.
func (e *Engine) Orchestrator() *synthetic.Orchestrator { return e.orchestrator }

// Connect registers a participant's connection and arms the inactivity
// timer. Reconnecting replaces the previous sink.
func (e *Engine) Connect(participantID string, sink contract.EventSink) {
	e.registry.Subscribe(participantID, sink)
	e.monitor.Attach(participantID)
	observability.SetConnectedParticipants(e.registry.Connected())
	e.log.Info(fmt.Sprintf("Participant %s connected", participantID))
}

// Disconnect unwinds every trace of a participant: pending synthetic
// state, queue entries, room membership with notifications, synthetic
// conversation, activity records and the connection itself. Safe to
// call more than once.
func (e *Engine) Disconnect(participantID string) {
	e.orchestrator.CancelPending(participantID)
	e.leaveRoomAndNotify(participantID)
	e.dropSynthSession(participantID)
	e.orchestrator.EndConversation(participantID)
	e.arbiter.Forget(participantID)
	e.monitor.Detach(participantID)
	e.monitor.Forget(participantID)
	e.registry.Unsubscribe(participantID)
	observability.SetConnectedParticipants(e.registry.Connected())
	e.log.Info(fmt.Sprintf("Participant %s disconnected", participantID))
}

// ForceDisconnect is the inactivity path: tell the participant why,
// then unwind and close the connection.
func (e *Engine) ForceDisconnect(participantID string) {
	e.log.Info(fmt.Sprintf("Disconnecting %s after sustained inactivity", participantID))
	sink, ok := e.registry.SinkOf(participantID)
	if ok {
		e.unicast(participantID, event.ChatEnded{Reason: "Disconnected due to inactivity"})
	}
	e.Disconnect(participantID)
	if ok {
		if err := sink.Close(); err != nil {
			e.log.Debug("Closing idle connection", "participant", participantID, "error", err)
		}
	}
}

// EnqueueForMatch enters a participant into the requested queue. An
// immediate match is finalized before returning; otherwise the
// participant learns their queue position and, in pair mode, the
// synthetic fallback delay starts ticking.
func (e *Engine) EnqueueForMatch(participantID string, mode domain.Mode) error {
	if !mode.Valid() {
		return errors.ErrInvalidMode
	}
	if e.orchestrator.HasConversation(participantID) {
		return errors.ErrAlreadyInSession
	}
	e.monitor.Touch(participantID)
	e.monitor.StartAttempt(participantID)

	var room *domain.Room
	var position int
	var err error
	switch mode {
	case domain.ModePair:
		room, position, err = e.arbiter.EnqueuePair(participantID)
	default:
		room, position, err = e.arbiter.EnqueueGroup(participantID)
	}
	if err != nil {
		return err
	}

	if room != nil {
		e.finalizeRealMatch(*room)
		return nil
	}

	e.unicast(participantID, event.Queued{
		Mode:     mode,
		Position: position,
		Message:  "Waiting for a partner...",
	})
	if mode == domain.ModePair {
		e.orchestrator.ArmDelay(participantID)
	}
	return nil
}

// CancelMatch withdraws a waiting participant from every queue and from
// the synthetic fallback path.
func (e *Engine) CancelMatch(participantID string) {
	e.monitor.Touch(participantID)
	e.orchestrator.CancelPending(participantID)
	e.arbiter.RemoveFromQueues(participantID)
	e.log.Info(fmt.Sprintf("Participant %s left the queue", participantID))
}

// SendMessage validates, rate-limits and routes one chat line either to
// the room's members or into the synthetic conversation.
func (e *Engine) SendMessage(participantID, text string) error {
	e.monitor.Touch(participantID)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.ErrEmptyMessage
	}
	if err := e.monitor.AllowSend(participantID); err != nil {
		observability.IncRateLimitRejection()
		return err
	}

	if room, ok := e.arbiter.RoomOf(participantID); ok {
		return e.sendToRoom(participantID, room, trimmed)
	}
	if session, ok := e.synthSessionOf(participantID); ok {
		return e.sendToSynthetic(participantID, session, trimmed)
	}
	return errors.ErrNotInSession
}

func (e *Engine) sendToRoom(participantID string, room domain.Room, text string) error {
	now := e.clock.Now()
	err := e.messages.StoreMessage(repositories.StoredMessage{
		ID:      uuid.New(),
		RoomID:  room.ID,
		Author:  participantID,
		Content: text,
		At:      now,
	})
	if err != nil {
		// The room keeps working even if the durable log does not.
		e.log.Error("Storing message", "room", room.ID, "error", err)
	}

	message := event.Message{
		RoomID:   room.ID,
		SenderID: participantID,
		Content:  text,
		SentAt:   now,
	}
	if color, ok := room.Colors[participantID]; ok {
		message.Color = &color
	}
	e.broadcast(room.ID, message)

	e.monitor.RecordSend(participantID)
	observability.IncMessage()
	return nil
}

func (e *Engine) sendToSynthetic(participantID string, session synthSession, text string) error {
	now := e.clock.Now()
	e.unicast(participantID, event.Message{
		RoomID:   session.roomID,
		SenderID: participantID,
		Content:  text,
		SentAt:   now,
	})
	e.monitor.RecordSend(participantID)
	observability.IncMessage()

	if err := e.orchestrator.HandleInbound(participantID, text); err != nil {
		return err
	}
	e.log.Debug("Synthetic conversation turn", "participant", participantID, "content", text)
	return nil
}

// LeaveSession ends the participant's current chat but keeps the
// connection, so they can immediately queue again.
func (e *Engine) LeaveSession(participantID string) {
	e.monitor.Touch(participantID)
	e.orchestrator.CancelPending(participantID)
	e.arbiter.RemoveFromQueues(participantID)

	if _, ok := e.synthSessionOf(participantID); ok {
		e.orchestrator.EndConversation(participantID)
		e.dropSynthSession(participantID)
		e.unicast(participantID, event.ChatEnded{Reason: "You left the chat"})
		e.monitor.EndSession(participantID)
		return
	}

	if e.leaveRoomAndNotify(participantID) {
		e.unicast(participantID, event.ChatEnded{Reason: "You left the chat"})
		e.monitor.EndSession(participantID)
	}
}

// leaveRoomAndNotify removes the participant from their room and tells
// the remaining members. Returns whether a room was actually left.
func (e *Engine) leaveRoomAndNotify(participantID string) bool {
	result, ok := e.arbiter.Leave(participantID)
	if !ok {
		return false
	}
	room := result.Room
	e.registry.LeaveRoom(participantID, room.ID)

	e.broadcast(room.ID, event.PartnerLeft{
		RoomID:    room.ID,
		MemberID:  participantID,
		Remaining: len(room.Members),
	})
	if result.Dissolved {
		e.broadcast(room.ID, event.ChatEnded{Reason: "Your chat partner has disconnected"})
		for _, member := range room.Members {
			e.monitor.EndSession(member)
		}
		e.registry.DropRoom(room.ID)
	}
	return true
}

// ReportParticipant stores an abuse report and acknowledges it. The
// reporter must be in an active session, real or synthetic.
func (e *Engine) ReportParticipant(reporterID, reportedID, reason string) error {
	e.monitor.Touch(reporterID)

	var roomID string
	if room, ok := e.arbiter.RoomOf(reporterID); ok {
		roomID = room.ID
	} else if session, ok := e.synthSessionOf(reporterID); ok {
		roomID = session.roomID
	} else {
		return errors.ErrNotInSession
	}

	if reason == "" {
		reason = "No reason provided"
	}
	err := e.reports.StoreReport(repositories.StoredReport{
		ID:         uuid.New(),
		ReporterID: reporterID,
		ReportedID: reportedID,
		RoomID:     roomID,
		Reason:     reason,
		At:         e.clock.Now(),
	})
	if err != nil {
		return err
	}
	e.unicast(reporterID, event.ReportReceived{Message: "Report submitted. Thank you."})
	return nil
}

// Stats snapshots the live counters and refreshes the gauges.
func (e *Engine) Stats() domain.Stats {
	pairDepth, groupDepth, rooms, _ := e.arbiter.Stats()
	stats := domain.Stats{
		PairQueueDepth:      pairDepth,
		GroupQueueDepth:     groupDepth,
		ActiveRooms:         rooms,
		ActiveConversations: e.orchestrator.ActiveCount(),
		ActiveParticipants:  e.registry.Connected(),
	}
	observability.SetQueueDepth(string(domain.ModePair), stats.PairQueueDepth)
	observability.SetQueueDepth(string(domain.ModeGroup), stats.GroupQueueDepth)
	observability.SetActiveRooms(stats.ActiveRooms)
	observability.SetActiveConversations(stats.ActiveConversations)
	return stats
}

// SyntheticMatched fabricates the room and partner identity and delivers
// the exact same matched event a real pairing produces.
func (e *Engine) SyntheticMatched(participantID string, p domain.Personality) {
	session := synthSession{roomID: uuid.NewString(), partnerID: uuid.NewString()}
	e.mu.Lock()
	e.synth[participantID] = session
	e.mu.Unlock()

	e.unicast(participantID, event.Matched{
		RoomID:      session.roomID,
		Mode:        domain.ModePair,
		MemberCount: 2,
	})
	observability.IncMatch("synthetic")
	e.log.Info(fmt.Sprintf("Synthetic session %s opened for %s (%s)", session.roomID, participantID, p.Name))
}

// SyntheticDelivered forwards one generated line as a partner message.
func (e *Engine) SyntheticDelivered(participantID, text string) {
	session, ok := e.synthSessionOf(participantID)
	if !ok {
		return
	}
	e.unicast(participantID, event.Message{
		RoomID:   session.roomID,
		SenderID: session.partnerID,
		Content:  text,
		SentAt:   e.clock.Now(),
	})
	e.log.Debug("Synthetic line delivered", "participant", participantID, "content", text)
}

// SyntheticEnded plays out the partner's exit: an optional farewell
// line, then the same leave notifications a real partner produces.
func (e *Engine) SyntheticEnded(participantID, reason, farewell string) {
	session, ok := e.synthSessionOf(participantID)
	if !ok {
		return
	}
	if farewell != "" {
		e.unicast(participantID, event.Message{
			RoomID:   session.roomID,
			SenderID: session.partnerID,
			Content:  farewell,
			SentAt:   e.clock.Now(),
		})
	}
	e.unicast(participantID, event.PartnerLeft{
		RoomID:    session.roomID,
		MemberID:  session.partnerID,
		Remaining: 1,
	})
	e.unicast(participantID, event.ChatEnded{Reason: "Your chat partner has disconnected"})

	e.dropSynthSession(participantID)
	e.monitor.EndSession(participantID)
	e.log.Info(fmt.Sprintf("Synthetic session for %s ended (%s)", participantID, reason))
}

// RealPartnerFound finalizes a preempted match: the synthetic path is
// already resolved, the room just needs announcing.
func (e *Engine) RealPartnerFound(participantID string, room domain.Room) {
	e.finalizeRealMatch(room)
}

// finalizeRealMatch seats and notifies every member of a fresh room.
// Any member still racing toward a synthetic match is pulled back.
func (e *Engine) finalizeRealMatch(room domain.Room) {
	e.registry.JoinRoom(room.ID, room.Members...)
	for _, member := range room.Members {
		e.orchestrator.CancelPending(member)

		matched := event.Matched{
			RoomID:      room.ID,
			Mode:        room.Mode,
			MemberCount: len(room.Members),
		}
		if color, ok := room.Colors[member]; ok {
			matched.Color = &color
		}
		e.unicast(member, matched)
	}
	observability.IncMatch("real")
	e.log.Info(fmt.Sprintf("Room %s announced to %d members", room.ID, len(room.Members)))
}

func (e *Engine) synthSessionOf(participantID string) (synthSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.synth[participantID]
	return session, ok
}

func (e *Engine) dropSynthSession(participantID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.synth, participantID)
}

func (e *Engine) unicast(participantID string, ev event.SessionEvent) {
	sink, ok := e.registry.SinkOf(participantID)
	if !ok {
		return
	}
	if err := sink.Consume(ev); err != nil {
		e.log.Warn("Delivering event", "participant", participantID, "event", ev.EventName(), "error", err)
	}
}

func (e *Engine) broadcast(roomID string, ev event.SessionEvent) {
	for _, sink := range e.registry.GetSinksForRoom(roomID) {
		if err := sink.Consume(ev); err != nil {
			e.log.Warn("Broadcasting event", "room", roomID, "event", ev.EventName(), "error", err)
		}
	}
}
