package runtime_test

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdice/contract"
	"chatdice/domain"
	"chatdice/domain/event"
	"chatdice/errors"
	"chatdice/repositories"
	"chatdice/runtime"
	"chatdice/synthetic"
)

type RecordingSink struct {
	mu     sync.Mutex
	events []event.SessionEvent
	closed bool
}

func (s *RecordingSink) Consume(e event.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *RecordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *RecordingSink) all() []event.SessionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.SessionEvent(nil), s.events...)
}

func (s *RecordingSink) byName(name string) []event.SessionEvent {
	var out []event.SessionEvent
	for _, e := range s.all() {
		if e.EventName() == name {
			out = append(out, e)
		}
	}
	return out
}

type cannedCompleter struct {
	reply string
}

func (c cannedCompleter) Complete(context.Context, []domain.Turn) (string, error) {
	return c.reply, nil
}

type engineFixture struct {
	engine   *runtime.Engine
	messages repositories.MessageRepository
	reports  repositories.ReportRepository
}

func newEngineFixture(t *testing.T, cfg synthetic.Config) *engineFixture {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	catalog, err := synthetic.LoadCatalog(slog.Default())
	require.NoError(t, err)

	messages := repositories.NewMessageRepository(db, slog.Default(), nil)
	reports := repositories.NewReportRepository(db, slog.Default())
	engine := runtime.NewEngine(
		slog.Default(), contract.SystemClock{}, rand.New(rand.NewSource(11)),
		cfg, catalog, cannedCompleter{reply: "hey!"}, messages, reports,
	)
	return &engineFixture{engine: engine, messages: messages, reports: reports}
}

// patientConfig keeps every synthetic timer far away so tests only see
// the real matching path.
func patientConfig() synthetic.Config {
	cfg := synthetic.DefaultConfig()
	cfg.MinQueueWait = time.Hour
	cfg.MaxQueueWait = 2 * time.Hour
	return cfg
}

func connect(f *engineFixture, id string) *RecordingSink {
	sink := &RecordingSink{}
	f.engine.Connect(id, sink)
	return sink
}

func Test_Engine_pairs_two_waiting_participants(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	alice := connect(f, "alice")
	bob := connect(f, "bob")

	// Act
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))

	// Assert
	require.Len(t, alice.byName("queued"), 1)
	aliceMatched := alice.byName("matched")
	bobMatched := bob.byName("matched")
	require.Len(t, aliceMatched, 1)
	require.Len(t, bobMatched, 1)
	assert.Equal(t, aliceMatched[0].(event.Matched).RoomID, bobMatched[0].(event.Matched).RoomID)
	assert.Equal(t, domain.ModePair, aliceMatched[0].(event.Matched).Mode)

	stats := f.engine.Stats()
	assert.Zero(t, stats.PairQueueDepth)
	assert.Equal(t, 1, stats.ActiveRooms)
}

func Test_Engine_reports_queue_position_while_waiting(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	alice := connect(f, "alice")

	// Act
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))

	// Assert
	queued := alice.byName("queued")
	require.Len(t, queued, 1)
	assert.Equal(t, 1, queued[0].(event.Queued).Position)
	assert.Equal(t, 1, f.engine.Stats().PairQueueDepth)
}

func Test_Engine_rejects_unknown_mode(t *testing.T) {
	f := newEngineFixture(t, patientConfig())
	connect(f, "alice")

	err := f.engine.EnqueueForMatch("alice", domain.Mode("speed-dating"))

	assert.ErrorIs(t, err, errors.ErrInvalidMode)
}

func Test_Engine_broadcasts_and_persists_room_messages(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	alice := connect(f, "alice")
	bob := connect(f, "bob")
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))
	roomID := alice.byName("matched")[0].(event.Matched).RoomID

	// Act
	require.NoError(t, f.engine.SendMessage("alice", "hello there"))

	// Assert: both members see the line, sender included.
	for _, sink := range []*RecordingSink{alice, bob} {
		messages := sink.byName("message")
		require.Len(t, messages, 1)
		assert.Equal(t, "alice", messages[0].(event.Message).SenderID)
		assert.Equal(t, "hello there", messages[0].(event.Message).Content)
	}
	stored, _, err := f.messages.GetMessages(roomID, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hello there", stored[0].Content)
}

func Test_Engine_rejects_empty_and_out_of_session_messages(t *testing.T) {
	f := newEngineFixture(t, patientConfig())
	connect(f, "alice")

	assert.ErrorIs(t, f.engine.SendMessage("alice", "   "), errors.ErrEmptyMessage)
	assert.ErrorIs(t, f.engine.SendMessage("alice", "anyone?"), errors.ErrNotInSession)
}

func Test_Engine_enforces_the_sliding_rate_limit(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	connect(f, "alice")
	connect(f, "bob")
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))

	// Act
	var err error
	for i := 0; i < 21; i++ {
		err = f.engine.SendMessage("alice", "spam")
	}

	// Assert
	assert.ErrorIs(t, err, errors.ErrRateExceeded)
}

func Test_Engine_leave_notifies_partner_and_dissolves_pair(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	alice := connect(f, "alice")
	bob := connect(f, "bob")
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))

	// Act
	f.engine.LeaveSession("alice")

	// Assert
	left := bob.byName("partner-left")
	require.Len(t, left, 1)
	assert.Equal(t, "alice", left[0].(event.PartnerLeft).MemberID)
	require.Len(t, bob.byName("chat-ended"), 1)
	require.Len(t, alice.byName("chat-ended"), 1)
	assert.Zero(t, f.engine.Stats().ActiveRooms)
}

func Test_Engine_disconnect_is_idempotent(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	connect(f, "alice")
	bob := connect(f, "bob")
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))

	// Act
	f.engine.Disconnect("alice")
	f.engine.Disconnect("alice")

	// Assert: partner notified exactly once.
	assert.Len(t, bob.byName("partner-left"), 1)
	assert.Len(t, bob.byName("chat-ended"), 1)
	stats := f.engine.Stats()
	assert.Zero(t, stats.ActiveRooms)
	assert.Equal(t, 1, stats.ActiveParticipants)
}

func Test_Engine_group_match_assigns_colors(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	sinks := make(map[string]*RecordingSink)
	for i := 0; i < domain.GroupRoomSize; i++ {
		id := string(rune('a' + i))
		sinks[id] = connect(f, id)
	}

	// Act
	for id := range sinks {
		require.NoError(t, f.engine.EnqueueForMatch(id, domain.ModeGroup))
	}

	// Assert: the tenth arrival drains the queue into one room.
	for id, sink := range sinks {
		matched := sink.byName("matched")
		require.Len(t, matched, 1, "participant %s", id)
		assert.Equal(t, domain.ModeGroup, matched[0].(event.Matched).Mode)
		assert.Equal(t, domain.GroupRoomSize, matched[0].(event.Matched).MemberCount)
		require.NotNil(t, matched[0].(event.Matched).Color)
	}
}

func Test_Engine_report_requires_active_session(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, patientConfig())
	alice := connect(f, "alice")
	connect(f, "bob")

	// Act / Assert: no session yet.
	assert.ErrorIs(t, f.engine.ReportParticipant("alice", "bob", "spam"), errors.ErrNotInSession)

	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))
	require.NoError(t, f.engine.ReportParticipant("alice", "bob", "spam"))

	require.Len(t, alice.byName("report-received"), 1)
	reports, err := f.reports.GetReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "alice", reports[0].ReporterID)
	assert.Equal(t, "bob", reports[0].ReportedID)
}

func Test_Engine_synthetic_match_is_indistinguishable_from_real(t *testing.T) {
	// Arrange: synthetic delay fires almost immediately, no opener.
	cfg := patientConfig()
	cfg.MinQueueWait = time.Millisecond
	cfg.MaxQueueWait = 5 * time.Millisecond
	cfg.FirstMessageProbability = 0
	cfg.ResponseDelayMin = 0
	cfg.ResponseDelayMax = 0
	f := newEngineFixture(t, cfg)
	alice := connect(f, "alice")

	// Act
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))

	// Assert: a matched event arrives shaped exactly like a pair match.
	require.Eventually(t, func() bool {
		return len(alice.byName("matched")) == 1
	}, time.Second, time.Millisecond)
	matched := alice.byName("matched")[0].(event.Matched)
	assert.Equal(t, domain.ModePair, matched.Mode)
	assert.Equal(t, 2, matched.MemberCount)
	assert.NotEmpty(t, matched.RoomID)

	// The conversation answers through the fabricated partner identity.
	require.NoError(t, f.engine.SendMessage("alice", "hi, anyone there?"))
	require.Eventually(t, func() bool {
		for _, e := range alice.byName("message") {
			if e.(event.Message).SenderID != "alice" {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)
}

func Test_Engine_synthetic_match_vacates_the_pair_queue(t *testing.T) {
	// Arrange: synthetic delay fires almost immediately, no opener.
	cfg := patientConfig()
	cfg.MinQueueWait = time.Millisecond
	cfg.MaxQueueWait = 5 * time.Millisecond
	cfg.FirstMessageProbability = 0
	f := newEngineFixture(t, cfg)
	alice := connect(f, "alice")

	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.Eventually(t, func() bool {
		return len(alice.byName("matched")) == 1
	}, time.Second, time.Millisecond)

	// Assert: the synthetic match consumed alice's queue slot.
	assert.Zero(t, f.engine.Stats().PairQueueDepth)

	// A later real requester waits instead of pairing with alice; his
	// own fallback eventually matches him synthetically too.
	bob := connect(f, "bob")
	require.NoError(t, f.engine.EnqueueForMatch("bob", domain.ModePair))
	assert.Len(t, bob.byName("queued"), 1)
	require.Eventually(t, func() bool {
		return len(bob.byName("matched")) == 1
	}, time.Second, time.Millisecond)
	assert.Zero(t, f.engine.Stats().ActiveRooms)
	assert.Equal(t, 2, f.engine.Stats().ActiveConversations)
	assert.Len(t, alice.byName("matched"), 1)

	// And alice cannot re-enter matching while the conversation lives.
	assert.ErrorIs(t, f.engine.EnqueueForMatch("alice", domain.ModePair), errors.ErrAlreadyInSession)
}

func Test_Engine_cancel_match_clears_queue_and_pending_fallback(t *testing.T) {
	// Arrange
	cfg := patientConfig()
	cfg.MinQueueWait = 20 * time.Millisecond
	cfg.MaxQueueWait = 40 * time.Millisecond
	f := newEngineFixture(t, cfg)
	alice := connect(f, "alice")
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.Equal(t, 1, f.engine.Stats().PairQueueDepth)

	// Act
	f.engine.CancelMatch("alice")

	// Assert: the queue entry is gone and the fallback timer was claimed.
	assert.Zero(t, f.engine.Stats().PairQueueDepth)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, alice.byName("matched"))
	assert.Zero(t, f.engine.Stats().ActiveConversations)

	// Cancelling leaves the participant free to queue again.
	require.NoError(t, f.engine.EnqueueForMatch("alice", domain.ModePair))
	require.Equal(t, 1, f.engine.Stats().PairQueueDepth)
}
