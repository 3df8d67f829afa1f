// Package synthetic schedules and runs AI-driven counterpart
// conversations so that the absence of a real partner is imperceptible.
// The per-participant pending state is a small compare-and-swap machine:
// Idle -> Queued(timer) -> {MatchedSynthetic | Cancelled}. A timer fire
// and a real-match preemption may race; whichever observes Queued wins
// and the loser is a silent no-op.
package synthetic

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"chatdice/contract"
	"chatdice/domain"
	"chatdice/errors"
	"chatdice/observability"
)

type pendingState int

const (
	stateQueued pendingState = iota + 1
	stateMatched
	stateCancelled
)

type pendingEntry struct {
	state pendingState
	timer *time.Timer
}

type Orchestrator struct {
	mu            sync.Mutex
	log           *slog.Logger
	clock         contract.Clock
	rng           *lockedRand
	cfg           Config
	catalog       *Catalog
	humanizer     *humanizer
	completer     contract.Completer
	partners      contract.PartnerSource
	events        contract.SyntheticEvents
	pending       map[string]*pendingEntry
	conversations map[string]*domain.Conversation
}

// NewOrchestrator wires the synthetic partner path. Lock ordering: the
// orchestrator mutex may be held while calling into partners, never the
// other way around.
func NewOrchestrator(
	log *slog.Logger,
	clock contract.Clock,
	rng *rand.Rand,
	cfg Config,
	catalog *Catalog,
	completer contract.Completer,
	partners contract.PartnerSource,
	events contract.SyntheticEvents,
) *Orchestrator {
	locked := newLockedRand(rng)
	return &Orchestrator{
		log:           log,
		clock:         clock,
		rng:           locked,
		cfg:           cfg,
		catalog:       catalog,
		humanizer:     newHumanizer(locked, cfg),
		completer:     completer,
		partners:      partners,
		events:        events,
		pending:       make(map[string]*pendingEntry),
		conversations: make(map[string]*domain.Conversation),
	}
}

// ArmDelay starts the bounded random fallback delay for a participant
// left waiting in the pair queue. A participant already pending or in a
// conversation is left untouched.
func (o *Orchestrator) ArmDelay(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.pending[id]; exists {
		return
	}
	if _, exists := o.conversations[id]; exists {
		return
	}

	delay := o.rng.Between(o.cfg.MinQueueWait, o.cfg.MaxQueueWait)
	entry := &pendingEntry{state: stateQueued}
	entry.timer = time.AfterFunc(delay, func() { o.timerFire(id) })
	o.pending[id] = entry
	o.log.Info(fmt.Sprintf("Participant %s queued for synthetic match in %.1fs", id, delay.Seconds()))
}

// timerFire claims the Queued state for the synthetic side. Losing the
// race against a preemption or cancel leaves a non-Queued state behind
// and the fire becomes a no-op.
func (o *Orchestrator) timerFire(id string) {
	o.mu.Lock()
	entry := o.pending[id]
	if entry == nil || entry.state != stateQueued {
		o.mu.Unlock()
		return
	}
	// The fire must also win the participant's own queue slot; losing
	// it means a real pairing landed between the enqueue and now.
	if !o.partners.TakeQueued(id) {
		entry.state = stateCancelled
		delete(o.pending, id)
		o.mu.Unlock()
		return
	}
	entry.state = stateMatched
	delete(o.pending, id)

	personality := o.catalog.Select(o.rng)
	conv := domain.NewConversation(id, personality, o.clock.Now())
	o.conversations[id] = conv

	speakFirst := o.rng.Float64() < o.cfg.FirstMessageProbability
	var openerDelay time.Duration
	if speakFirst {
		openerDelay = o.rng.Between(o.cfg.FirstMessageDelayMin, o.cfg.FirstMessageDelayMax)
	}
	o.mu.Unlock()

	o.log.Info(fmt.Sprintf("Matched participant %s with synthetic partner (%s)", id, personality.Name))
	o.events.SyntheticMatched(id, personality)

	if speakFirst {
		time.AfterFunc(openerDelay, func() { o.sendOpener(id) })
	}
}

// sendOpener generates the synthetic first line from the personality
// prompt plus the opener instruction. A provider failure here is
// swallowed; the synthetic side simply waits for the participant.
func (o *Orchestrator) sendOpener(id string) {
	o.mu.Lock()
	conv, ok := o.conversations[id]
	if !ok {
		o.mu.Unlock()
		return
	}
	transcript := []domain.Turn{
		conv.Transcript[0],
		{Role: domain.RoleSystem, Content: openerInstruction},
	}
	o.mu.Unlock()

	raw, err := o.completer.Complete(context.Background(), transcript)
	if err != nil {
		o.log.Warn("Opener generation failed", "participant", id, "error", err)
		observability.IncProviderFailure()
		return
	}
	text := o.humanizer.Humanize(raw)

	o.mu.Lock()
	conv, ok = o.conversations[id]
	if !ok {
		o.mu.Unlock()
		return
	}
	conv.AppendAssistant(text, o.clock.Now(), false)
	o.mu.Unlock()

	o.events.SyntheticDelivered(id, text)
}

// CancelPending resolves the race in favor of a real match or a
// disconnect. Returns whether a Queued state was actually claimed.
func (o *Orchestrator) CancelPending(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry := o.pending[id]
	if entry == nil || entry.state != stateQueued {
		return false
	}
	entry.state = stateCancelled
	entry.timer.Stop()
	delete(o.pending, id)
	return true
}

// HandleInbound appends the participant's message, evaluates the
// termination policy and otherwise schedules a generated reply. Never
// blocks on the provider.
func (o *Orchestrator) HandleInbound(id, text string) error {
	o.mu.Lock()
	conv, ok := o.conversations[id]
	if !ok {
		o.mu.Unlock()
		return errors.ErrNoConversation
	}
	now := o.clock.Now()
	conv.AppendUser(text, now)

	if o.shouldEnd(conv, now) {
		strategy := drawExitStrategy(o.rng, o.cfg)
		delete(o.conversations, id)
		o.mu.Unlock()

		o.log.Info(fmt.Sprintf("Ending synthetic conversation for %s (%s exit, %d turns)",
			id, strategy.Kind, conv.TurnCount))
		if strategy.Kind == domain.ExitGhost {
			o.events.SyntheticEnded(id, "policy", "")
			return nil
		}
		delay := o.responseDelay(text)
		time.AfterFunc(delay, func() {
			o.events.SyntheticEnded(id, "policy", strategy.Farewell)
		})
		return nil
	}
	o.mu.Unlock()

	go o.generateReply(id, text)
	return nil
}

// shouldEnd applies the termination policy: never before MinTurns,
// mandatory once the conversation exceeds MaxDuration or MaxTurns.
func (o *Orchestrator) shouldEnd(conv *domain.Conversation, now time.Time) bool {
	if conv.TurnCount < o.cfg.MinTurns {
		return false
	}
	return conv.Elapsed(now) >= o.cfg.MaxDuration || conv.TurnCount >= o.cfg.MaxTurns
}

func (o *Orchestrator) generateReply(id, inbound string) {
	o.mu.Lock()
	conv, ok := o.conversations[id]
	if !ok {
		o.mu.Unlock()
		return
	}
	transcript := append([]domain.Turn(nil), conv.Transcript...)
	o.mu.Unlock()

	text, err := o.completer.Complete(context.Background(), transcript)
	degraded := false
	if err != nil {
		// Provider exhaustion degrades the turn, never the session.
		o.log.Warn("Completion failed, substituting fallback", "participant", id, "error", err)
		observability.IncProviderFailure()
		text = fallbackPhrases[o.rng.Intn(len(fallbackPhrases))]
		degraded = true
	} else {
		text = o.humanizer.Humanize(text)
	}

	o.mu.Lock()
	conv, ok = o.conversations[id]
	if !ok {
		// Torn down while the provider was thinking.
		o.mu.Unlock()
		return
	}
	conv.AppendAssistant(text, o.clock.Now(), degraded)
	o.mu.Unlock()

	time.AfterFunc(o.responseDelay(inbound), func() {
		o.mu.Lock()
		_, alive := o.conversations[id]
		o.mu.Unlock()
		if alive {
			o.events.SyntheticDelivered(id, text)
		}
	})
}

// responseDelay simulates typing time: the base range stretches upward
// as the inbound message length approaches LengthScaleChars, then the
// delay is randomized within the stretched range.
func (o *Orchestrator) responseDelay(inbound string) time.Duration {
	lengthFactor := 1.0
	if o.cfg.LengthScaleChars > 0 {
		lengthFactor = float64(len(inbound)) / float64(o.cfg.LengthScaleChars)
		if lengthFactor > 1 {
			lengthFactor = 1
		}
	}
	spread := float64(o.cfg.ResponseDelayMax-o.cfg.ResponseDelayMin) * lengthFactor * o.rng.Float64()
	return o.cfg.ResponseDelayMin + time.Duration(spread)
}

// PollQueued is the 5s liveness poll: for every participant still
// Queued it asks the pair queue for a real, non-recent counterpart and,
// on success, resolves the pending state before announcing the room.
func (o *Orchestrator) PollQueued() {
	o.mu.Lock()
	var queued []string
	for id, entry := range o.pending {
		if entry.state == stateQueued {
			queued = append(queued, id)
		}
	}
	o.mu.Unlock()

	for _, id := range queued {
		o.mu.Lock()
		entry := o.pending[id]
		if entry == nil || entry.state != stateQueued {
			o.mu.Unlock()
			continue
		}
		room, ok := o.partners.ClaimPartner(id)
		if !ok {
			o.mu.Unlock()
			continue
		}
		entry.state = stateCancelled
		entry.timer.Stop()
		delete(o.pending, id)
		o.mu.Unlock()

		o.log.Info(fmt.Sprintf("Real partner found for %s, abandoning synthetic path", id))
		o.events.RealPartnerFound(id, room)
	}
}

// SweepStale force-ends conversations idle beyond twice the maximum
// duration and returns how many were removed.
func (o *Orchestrator) SweepStale() int {
	o.mu.Lock()
	now := o.clock.Now()
	var stale []string
	for id, conv := range o.conversations {
		if conv.Idle(now) > 2*o.cfg.MaxDuration {
			stale = append(stale, id)
			delete(o.conversations, id)
		}
	}
	o.mu.Unlock()

	for _, id := range stale {
		o.log.Info(fmt.Sprintf("Cleaning up stale synthetic conversation for %s", id))
		o.events.SyntheticEnded(id, "stale", "")
	}
	return len(stale)
}

// EndConversation removes a conversation without emitting events, for
// the disconnect teardown path. Idempotent.
func (o *Orchestrator) EndConversation(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.conversations[id]; !ok {
		return false
	}
	delete(o.conversations, id)
	return true
}

// HasConversation reports whether the participant is currently in a
// synthetic conversation.
func (o *Orchestrator) HasConversation(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.conversations[id]
	return ok
}

// ActiveCount is the number of live synthetic conversations.
func (o *Orchestrator) ActiveCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.conversations)
}
