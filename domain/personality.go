package domain

// Personality is one immutable entry of the load-time personality catalog.
// Prompt is the fully resolved system prompt (shared instructions plus the
// personality-specific text).
type Personality struct {
	ID     string
	Name   string
	Weight float64
	Prompt string
}

// ExitKind is how the synthetic side terminates a conversation.
type ExitKind string

const (
	// ExitGhost disconnects without emitting anything.
	ExitGhost ExitKind = "ghost"
	// ExitShortNotice emits a terse "gtg" style line before teardown.
	ExitShortNotice ExitKind = "short_notice"
	// ExitNaturalFarewell emits one line drawn from a fixed phrase set.
	ExitNaturalFarewell ExitKind = "natural_farewell"
)

// ExitStrategy is the drawn termination policy. Farewell is empty for ExitGhost.
type ExitStrategy struct {
	Kind     ExitKind
	Farewell string
}
