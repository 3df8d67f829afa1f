package matchmaking

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdice/domain"
	"chatdice/errors"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestArbiter() (*Arbiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewArbiter(slog.Default(), clock), clock
}

func Test_EnqueuePair_matches_two_waiting_participants(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	room, position, err := arbiter.EnqueuePair("alice")
	req.NoError(err)
	req.Nil(room)
	req.Equal(1, position)

	room, _, err = arbiter.EnqueuePair("bob")
	req.NoError(err)
	req.NotNil(room)
	assert.Equal(t, domain.ModePair, room.Mode)
	assert.ElementsMatch(t, []string{"alice", "bob"}, room.Members)

	pairDepth, _, rooms, members := arbiter.Stats()
	assert.Equal(t, 0, pairDepth)
	assert.Equal(t, 1, rooms)
	assert.Equal(t, 2, members)
}

func Test_EnqueuePair_rejects_double_enqueue(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)

	_, _, err = arbiter.EnqueuePair("alice")
	req.ErrorIs(err, errors.ErrAlreadyQueued)
}

func Test_EnqueuePair_skips_recent_partner(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	// First pairing puts bob in alice's recency ledger.
	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)
	room, _, err := arbiter.EnqueuePair("bob")
	req.NoError(err)
	req.NotNil(room)

	arbiter.Leave("alice")
	arbiter.Leave("bob")

	// Alice waits again; bob must fall through to the queue instead of
	// being rematched immediately.
	_, _, err = arbiter.EnqueuePair("alice")
	req.NoError(err)
	room, position, err := arbiter.EnqueuePair("bob")
	req.NoError(err)
	assert.Nil(t, room)
	assert.Equal(t, 2, position)

	// A third participant is eligible for both; the head of the queue wins.
	room, _, err = arbiter.EnqueuePair("carol")
	req.NoError(err)
	req.NotNil(room)
	assert.ElementsMatch(t, []string{"alice", "carol"}, room.Members)
}

func Test_EnqueuePair_skips_expired_entry(t *testing.T) {
	req := require.New(t)
	arbiter, clock := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("sleeper")
	req.NoError(err)

	clock.Advance(entryTTL + time.Minute)

	room, position, err := arbiter.EnqueuePair("alice")
	req.NoError(err)
	assert.Nil(t, room, "expired entry must not be matched")
	assert.Equal(t, 2, position)
}

func Test_EnqueueGroup_drains_ten_into_room_with_colors(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	ids := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}
	var room *domain.Room
	for _, id := range ids[:9] {
		created, _, err := arbiter.EnqueueGroup(id)
		req.NoError(err)
		req.Nil(created)
	}
	room, _, err := arbiter.EnqueueGroup(ids[9])
	req.NoError(err)
	req.NotNil(room)

	assert.Equal(t, domain.ModeGroup, room.Mode)
	assert.Len(t, room.Members, 10)
	assert.Len(t, room.Colors, 10)
	// Cyclic palette by join order.
	assert.Equal(t, domain.Palette[0], room.Colors["p0"])
	assert.Equal(t, domain.Palette[9], room.Colors["p9"])
}

func Test_EnqueueGroup_reenqueues_survivors_when_too_many_expired(t *testing.T) {
	req := require.New(t)
	arbiter, clock := newTestArbiter()

	for i := 0; i < 9; i++ {
		_, _, err := arbiter.EnqueueGroup(string(rune('a' + i)))
		req.NoError(err)
	}
	clock.Advance(entryTTL + time.Minute)

	room, position, err := arbiter.EnqueueGroup("late")
	req.NoError(err)
	assert.Nil(t, room, "a lone survivor cannot form a group")
	assert.Equal(t, 1, position, "the survivor is re-enqueued at the tail")
}

func Test_ClaimPartner_removes_both_and_creates_room(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	// Alice waits in the real queue while bob sits in a synthetic
	// fallback pending state; the poll claims her on bob's behalf.
	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)

	room, ok := arbiter.ClaimPartner("bob")
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"alice", "bob"}, room.Members)
	assert.False(t, arbiter.Queued("alice"))

	_, ok = arbiter.ClaimPartner("bob")
	assert.False(t, ok, "queue is empty after the claim")
}

func Test_TakeQueued_claims_own_slot_exactly_once(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)

	// First take wins the slot; a racing pairing can no longer see it.
	assert.True(t, arbiter.TakeQueued("alice"))
	assert.False(t, arbiter.Queued("alice"))

	room, _, err := arbiter.EnqueuePair("bob")
	req.NoError(err)
	assert.Nil(t, room, "bob must wait, alice's entry is gone")

	// Second take loses: the slot was already consumed.
	assert.False(t, arbiter.TakeQueued("alice"))
}

func Test_ClaimPartner_never_claims_recent_partner(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)
	room, _, err := arbiter.EnqueuePair("bob")
	req.NoError(err)
	req.NotNil(room)
	arbiter.Leave("alice")
	arbiter.Leave("bob")

	_, _, err = arbiter.EnqueuePair("alice")
	req.NoError(err)

	_, ok := arbiter.ClaimPartner("bob")
	assert.False(t, ok)
}

func Test_Leave_dissolves_pair_room_below_viability(t *testing.T) {
	req := require.New(t)
	arbiter, _ := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("alice")
	req.NoError(err)
	room, _, err := arbiter.EnqueuePair("bob")
	req.NoError(err)
	req.NotNil(room)

	result, ok := arbiter.Leave("alice")
	req.True(ok)
	assert.True(t, result.Dissolved)
	assert.Equal(t, []string{"bob"}, result.Room.Members)

	_, inRoom := arbiter.RoomOf("bob")
	assert.False(t, inRoom, "remaining member is unseated with the room")

	_, ok = arbiter.Leave("alice")
	assert.False(t, ok, "leave is idempotent")
}

func Test_SweepExpired_purges_old_entries(t *testing.T) {
	req := require.New(t)
	arbiter, clock := newTestArbiter()

	_, _, err := arbiter.EnqueuePair("old")
	req.NoError(err)
	clock.Advance(entryTTL + time.Second)
	_, _, err = arbiter.EnqueueGroup("fresh")
	req.NoError(err)

	removed := arbiter.SweepExpired()
	assert.Equal(t, 1, removed)

	pairDepth, groupDepth, _, _ := arbiter.Stats()
	assert.Equal(t, 0, pairDepth)
	assert.Equal(t, 1, groupDepth)
}
