package synthetic

import "chatdice/domain"

type exitOption struct {
	kind   domain.ExitKind
	weight float64
}

// drawExitStrategy picks how the synthetic side leaves: mostly it
// ghosts, occasionally it announces a terse or natural goodbye.
func drawExitStrategy(rng *lockedRand, cfg Config) domain.ExitStrategy {
	options := []exitOption{
		{kind: domain.ExitGhost, weight: cfg.GhostWeight},
		{kind: domain.ExitShortNotice, weight: cfg.ShortNoticeWeight},
		{kind: domain.ExitNaturalFarewell, weight: cfg.NaturalWeight},
	}
	picked := pickWeighted(rng, options, func(o exitOption) float64 { return o.weight })

	switch picked.kind {
	case domain.ExitShortNotice:
		return domain.ExitStrategy{
			Kind:     domain.ExitShortNotice,
			Farewell: shortNoticePhrases[rng.Intn(len(shortNoticePhrases))],
		}
	case domain.ExitNaturalFarewell:
		return domain.ExitStrategy{
			Kind:     domain.ExitNaturalFarewell,
			Farewell: naturalFarewells[rng.Intn(len(naturalFarewells))],
		}
	default:
		return domain.ExitStrategy{Kind: domain.ExitGhost}
	}
}
