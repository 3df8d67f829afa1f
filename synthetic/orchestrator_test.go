package synthetic

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdice/domain"
	"chatdice/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	calls [][]domain.Turn
}

func (s *stubCompleter) Complete(_ context.Context, transcript []domain.Turn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]domain.Turn(nil), transcript...))
	return s.reply, s.err
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type endedEvent struct {
	id       string
	reason   string
	farewell string
}

type eventRecorder struct {
	mu        sync.Mutex
	matched   []domain.Personality
	delivered []string
	ended     []endedEvent
	realRooms []domain.Room
}

func (r *eventRecorder) SyntheticMatched(_ string, p domain.Personality) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matched = append(r.matched, p)
}

func (r *eventRecorder) SyntheticDelivered(_ string, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, text)
}

func (r *eventRecorder) SyntheticEnded(id, reason, farewell string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, endedEvent{id: id, reason: reason, farewell: farewell})
}

func (r *eventRecorder) RealPartnerFound(_ string, room domain.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.realRooms = append(r.realRooms, room)
}

func (r *eventRecorder) counts() (matched, delivered, ended, real int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matched), len(r.delivered), len(r.ended), len(r.realRooms)
}

type stubPartners struct {
	mu       sync.Mutex
	room     domain.Room
	found    bool
	slotGone bool
	calls    int
}

func (s *stubPartners) ClaimPartner(string) (domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.room, s.found
}

func (s *stubPartners) TakeQueued(string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.slotGone
}

func (s *stubPartners) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type orchestratorFixture struct {
	orchestrator *Orchestrator
	clock        *fakeClock
	completer    *stubCompleter
	events       *eventRecorder
	partners     *stubPartners
}

func newFixture(t *testing.T, cfg Config) *orchestratorFixture {
	t.Helper()
	catalog, err := LoadCatalog(slog.Default())
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	completer := &stubCompleter{reply: "sure thing"}
	events := &eventRecorder{}
	partners := &stubPartners{}
	orchestrator := NewOrchestrator(
		slog.Default(), clock, rand.New(rand.NewSource(7)),
		cfg, catalog, completer, partners, events,
	)
	return &orchestratorFixture{
		orchestrator: orchestrator,
		clock:        clock,
		completer:    completer,
		events:       events,
		partners:     partners,
	}
}

// quietConfig keeps the synthetic side from speaking first and makes
// every delay immediate, so tests only wait on goroutine scheduling.
func quietConfig() Config {
	return Config{
		MinQueueWait: time.Hour,
		MaxQueueWait: 2 * time.Hour,
		MinTurns:     3,
		MaxTurns:     50,
		MaxDuration:  10 * time.Minute,
		GhostWeight:  1,
	}
}

func Test_timer_fire_creates_conversation_and_announces_match(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")

	// Act
	f.orchestrator.timerFire("alice")

	// Assert
	assert.True(t, f.orchestrator.HasConversation("alice"))
	assert.Equal(t, 1, f.orchestrator.ActiveCount())
	matched, _, _, _ := f.events.counts()
	assert.Equal(t, 1, matched)
	assert.NotEmpty(t, f.events.matched[0].Prompt)
}

func Test_timer_fire_is_a_no_op_after_cancel(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")

	// Act
	claimed := f.orchestrator.CancelPending("alice")
	f.orchestrator.timerFire("alice")

	// Assert
	assert.True(t, claimed)
	assert.False(t, f.orchestrator.HasConversation("alice"))
	matched, _, _, _ := f.events.counts()
	assert.Zero(t, matched)
}

func Test_timer_fire_backs_off_when_the_queue_slot_is_gone(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")
	f.partners.slotGone = true

	// Act
	f.orchestrator.timerFire("alice")

	// Assert
	assert.False(t, f.orchestrator.HasConversation("alice"))
	matched, _, _, _ := f.events.counts()
	assert.Zero(t, matched)
	// The pending state resolved; a late cancel has nothing to claim.
	assert.False(t, f.orchestrator.CancelPending("alice"))
}

func Test_CancelPending_loses_once_the_timer_fired(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act
	claimed := f.orchestrator.CancelPending("alice")

	// Assert
	assert.False(t, claimed)
	assert.True(t, f.orchestrator.HasConversation("alice"))
}

func Test_poll_preempts_pending_timer_exactly_once(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.partners.found = true
	f.partners.room = domain.Room{ID: "room-1", Mode: domain.ModePair, Members: []string{"alice", "bob"}}
	f.orchestrator.ArmDelay("alice")

	// Act
	f.orchestrator.PollQueued()
	f.orchestrator.timerFire("alice")
	f.orchestrator.PollQueued()

	// Assert: the real match won, the timer and later polls were no-ops.
	matched, _, _, real := f.events.counts()
	assert.Zero(t, matched)
	assert.Equal(t, 1, real)
	assert.Equal(t, "room-1", f.events.realRooms[0].ID)
	assert.Equal(t, 1, f.partners.callCount())
	assert.False(t, f.orchestrator.HasConversation("alice"))
}

func Test_poll_leaves_pending_untouched_without_candidate(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")

	// Act
	f.orchestrator.PollQueued()
	f.orchestrator.timerFire("alice")

	// Assert
	assert.Equal(t, 1, f.partners.callCount())
	assert.True(t, f.orchestrator.HasConversation("alice"))
}

func Test_armed_timer_eventually_fires_on_its_own(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	cfg.MinQueueWait = time.Millisecond
	cfg.MaxQueueWait = 5 * time.Millisecond
	f := newFixture(t, cfg)

	// Act
	f.orchestrator.ArmDelay("alice")

	// Assert
	require.Eventually(t, func() bool {
		return f.orchestrator.HasConversation("alice")
	}, time.Second, time.Millisecond)
}

func Test_HandleInbound_without_conversation_fails(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())

	// Act
	err := f.orchestrator.HandleInbound("ghost", "hello?")

	// Assert
	assert.ErrorIs(t, err, errors.ErrNoConversation)
}

func Test_HandleInbound_schedules_a_generated_reply(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act
	err := f.orchestrator.HandleInbound("alice", "hey, how are you?")

	// Assert
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, delivered, _, _ := f.events.counts()
		return delivered == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "sure thing", f.events.delivered[0])
	require.Equal(t, 1, f.completer.callCount())
	transcript := f.completer.calls[0]
	assert.Equal(t, domain.RoleSystem, transcript[0].Role)
	assert.Equal(t, "hey, how are you?", transcript[len(transcript)-1].Content)
}

func Test_HandleInbound_masks_provider_failure_with_fallback(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.completer.err = fmt.Errorf("quota exhausted")
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act
	require.NoError(t, f.orchestrator.HandleInbound("alice", "you there?"))

	// Assert
	require.Eventually(t, func() bool {
		_, delivered, _, _ := f.events.counts()
		return delivered == 1
	}, time.Second, time.Millisecond)
	assert.Contains(t, fallbackPhrases, f.events.delivered[0])
}

func Test_no_termination_before_minimum_turns(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	cfg.MaxDuration = 0
	f := newFixture(t, cfg)
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act: two turns even though the duration cap is already exceeded.
	require.NoError(t, f.orchestrator.HandleInbound("alice", "one"))
	require.NoError(t, f.orchestrator.HandleInbound("alice", "two"))

	// Assert
	assert.True(t, f.orchestrator.HasConversation("alice"))
	_, _, ended, _ := f.events.counts()
	assert.Zero(t, ended)
}

func Test_duration_cap_triggers_ghost_exit_after_minimum_turns(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	cfg.MinTurns = 1
	cfg.MaxDuration = time.Minute
	f := newFixture(t, cfg)
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")
	f.clock.Advance(2 * time.Minute)

	// Act
	require.NoError(t, f.orchestrator.HandleInbound("alice", "still there?"))

	// Assert: ghost exit ends silently, no farewell and no reply.
	assert.False(t, f.orchestrator.HasConversation("alice"))
	require.Len(t, f.events.ended, 1)
	assert.Equal(t, endedEvent{id: "alice", reason: "policy"}, f.events.ended[0])
	_, delivered, _, _ := f.events.counts()
	assert.Zero(t, delivered)
}

func Test_turn_cap_triggers_spoken_exit_with_farewell(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	cfg.MinTurns = 1
	cfg.MaxTurns = 1
	cfg.GhostWeight = 0
	cfg.NaturalWeight = 1
	f := newFixture(t, cfg)
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act
	require.NoError(t, f.orchestrator.HandleInbound("alice", "hi"))

	// Assert
	assert.False(t, f.orchestrator.HasConversation("alice"))
	require.Eventually(t, func() bool {
		_, _, ended, _ := f.events.counts()
		return ended == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "policy", f.events.ended[0].reason)
	assert.Contains(t, naturalFarewells, f.events.ended[0].farewell)
}

func Test_SweepStale_removes_long_idle_conversations(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	f := newFixture(t, cfg)
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")
	f.orchestrator.ArmDelay("bob")
	f.orchestrator.timerFire("bob")
	f.clock.Advance(2*cfg.MaxDuration + time.Second)

	// Act
	removed := f.orchestrator.SweepStale()

	// Assert
	assert.Equal(t, 2, removed)
	assert.Zero(t, f.orchestrator.ActiveCount())
	_, _, ended, _ := f.events.counts()
	assert.Equal(t, 2, ended)
	assert.Equal(t, "stale", f.events.ended[0].reason)
}

func Test_EndConversation_is_idempotent(t *testing.T) {
	// Arrange
	f := newFixture(t, quietConfig())
	f.orchestrator.ArmDelay("alice")
	f.orchestrator.timerFire("alice")

	// Act / Assert
	assert.True(t, f.orchestrator.EndConversation("alice"))
	assert.False(t, f.orchestrator.EndConversation("alice"))
	_, _, ended, _ := f.events.counts()
	assert.Zero(t, ended)
}

func Test_opener_speaks_first_with_the_opener_instruction(t *testing.T) {
	// Arrange
	cfg := quietConfig()
	cfg.FirstMessageProbability = 1
	f := newFixture(t, cfg)
	f.completer.reply = "hey! how's it going"
	f.orchestrator.ArmDelay("alice")

	// Act
	f.orchestrator.timerFire("alice")

	// Assert
	require.Eventually(t, func() bool {
		_, delivered, _, _ := f.events.counts()
		return delivered == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "hey! how's it going", f.events.delivered[0])
	require.Equal(t, 1, f.completer.callCount())
	transcript := f.completer.calls[0]
	require.Len(t, transcript, 2)
	assert.Equal(t, openerInstruction, transcript[1].Content)
}
