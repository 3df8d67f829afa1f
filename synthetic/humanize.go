package synthetic

import (
	"regexp"
	"strings"
	"unicode"
)

// typoLexicon lists whole-word substitutions mimicking casual typing.
// At most one is applied per message.
var typoLexicon = [][2]string{
	{"the", "teh"},
	{"you", "u"},
	{"are", "r"},
	{"your", "ur"},
	{"what", "wht"},
	{"that", "taht"},
	{"just", "jsut"},
	{"like", "liek"},
	{"and", "nd"},
	{"with", "w/"},
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// humanizer applies the fixed-order transform chain to generated text:
// shorten, then case fold, then typo injection. Shortening must come
// before typo injection so a substitution is never truncated mid-word.
type humanizer struct {
	rng *lockedRand
	cfg Config
}

func newHumanizer(rng *lockedRand, cfg Config) *humanizer {
	return &humanizer{rng: rng, cfg: cfg}
}

// Humanize randomizes each stage independently per call.
func (h *humanizer) Humanize(text string) string {
	return Transform(text,
		h.rng.Float64() < h.cfg.ShortenProbability,
		h.rng.Float64() < h.cfg.LowercaseProbability,
		h.rng.Float64() < h.cfg.TypoProbability,
		h.rng,
	)
}

// Transform applies the selected stages in fixed order. Exposed with
// explicit switches so the chain stays testable without randomness.
func Transform(text string, shorten, lowercase, typo bool, rng *lockedRand) string {
	out := text
	if shorten {
		out = firstSentence(out)
	}
	if lowercase {
		out = foldCase(out)
	}
	if typo {
		out = injectTypo(out, rng)
	}
	return out
}

// firstSentence truncates to the first sentence, dropping the
// terminating punctuation like a hurried typist would.
func firstSentence(text string) string {
	parts := sentenceSplit.Split(text, -1)
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			return trimmed
		}
	}
	return text
}

// foldCase lowercases the leading rune and any standalone capitalized
// single-letter word, preserving the pronoun "I".
func foldCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if len(word) == 1 && word != "I" {
			words[i] = strings.ToLower(word)
		}
	}
	folded := strings.Join(words, " ")

	runes := []rune(folded)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) && string(runes[0]) != "I" {
		runes[0] = unicode.ToLower(runes[0])
	}
	return string(runes)
}

// injectTypo substitutes one whole-word lexicon match, chosen at random.
func injectTypo(text string, rng *lockedRand) string {
	pattern := typoLexicon[rng.Intn(len(typoLexicon))]
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pattern[0]) + `\b`)
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + pattern[1] + text[loc[1]:]
}
