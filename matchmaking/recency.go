package matchmaking

import "github.com/samber/lo"

// recencyCapacity is how many former partners are remembered per participant.
const recencyCapacity = 5

// recencyLedger keeps a short most-recent-first history of former pair
// partners so the arbiter avoids immediately rematching the same two
// participants. Group rooms record nothing here.
type recencyLedger struct {
	partners map[string][]string
}

func newRecencyLedger() *recencyLedger {
	return &recencyLedger{partners: make(map[string][]string)}
}

// Record remembers a and b as each other's most recent partner.
func (l *recencyLedger) Record(a, b string) {
	l.push(a, b)
	l.push(b, a)
}

func (l *recencyLedger) push(owner, partner string) {
	history := lo.Without(l.partners[owner], partner)
	history = append([]string{partner}, history...)
	if len(history) > recencyCapacity {
		history = history[:recencyCapacity]
	}
	l.partners[owner] = history
}

// Recent reports whether b sits in a's ledger or a in b's.
func (l *recencyLedger) Recent(a, b string) bool {
	return lo.Contains(l.partners[a], b) || lo.Contains(l.partners[b], a)
}

// Forget drops a participant's history on disconnect.
func (l *recencyLedger) Forget(id string) {
	delete(l.partners, id)
}
