package synthetic

import "time"

// Config gathers every behavioral knob of the synthetic partner path.
// Defaults mirror the production tuning; tests shrink the durations.
type Config struct {
	// Queue delay before a synthetic match wins, drawn uniformly.
	MinQueueWait time.Duration
	MaxQueueWait time.Duration

	// First-message sub-protocol.
	FirstMessageProbability float64
	FirstMessageDelayMin    time.Duration
	FirstMessageDelayMax    time.Duration

	// Response delay, scaled upward as the inbound message length
	// approaches LengthScaleChars.
	ResponseDelayMin time.Duration
	ResponseDelayMax time.Duration
	LengthScaleChars int

	// Termination policy.
	MinTurns    int
	MaxTurns    int
	MaxDuration time.Duration

	// Exit strategy weights.
	GhostWeight       float64
	ShortNoticeWeight float64
	NaturalWeight     float64

	// Humanization probabilities.
	ShortenProbability   float64
	LowercaseProbability float64
	TypoProbability      float64
}

func DefaultConfig() Config {
	return Config{
		MinQueueWait:            10 * time.Second,
		MaxQueueWait:            20 * time.Second,
		FirstMessageProbability: 0.65,
		FirstMessageDelayMin:    2 * time.Second,
		FirstMessageDelayMax:    6 * time.Second,
		ResponseDelayMin:        2 * time.Second,
		ResponseDelayMax:        8 * time.Second,
		LengthScaleChars:        100,
		MinTurns:                3,
		MaxTurns:                50,
		MaxDuration:             10 * time.Minute,
		GhostWeight:             0.80,
		ShortNoticeWeight:       0.10,
		NaturalWeight:           0.10,
		ShortenProbability:      0.3,
		LowercaseProbability:    0.4,
		TypoProbability:         0.07,
	}
}

// openerInstruction is appended to the personality prompt when the
// synthetic side speaks first.
const openerInstruction = "Start the conversation with a brief, casual greeting or opening line. " +
	"Keep it natural and brief (1-2 sentences max). " +
	"Act like you just got matched with someone new on a random chat site."

// fallbackPhrases mask provider failures; one is substituted when the
// completion retries are exhausted.
var fallbackPhrases = []string{
	"lol yeah",
	"fair enough",
	"same tbh",
	"true",
	"haha yeah",
	"i feel that",
}

// shortNoticePhrases are the terse goodbye variants.
var shortNoticePhrases = []string{"gtg", "gotta go", "gotta run"}

// naturalFarewells is the fixed natural-exit phrase set.
var naturalFarewells = []string{
	"gtg, nice talking to you!!",
	"take care!",
	"oop bye lol",
	"parents calling, see ya",
	"my food just got here lol bye",
}
