package engine

import (
	"strings"

	"yodel.app/insight/internal/domain"
)

// maxCandidates is an internal processing ceiling on distinct generated
// phrases. Pathological inputs that would exceed it stop enumerating; the
// documented input-keyword cap keeps realistic inputs far below it.
const maxCandidates = 10000

// FieldTokens carries the per-field ordered keyword lists generation draws
// from.
type FieldTokens struct {
	Title    []string
	Subtitle []string
	Keywords []string
}

// Generator produces the distinct candidate phrases (2-4 words) for one
// analysis run. Phrases are word-order-preserving combinations, not
// permutations: within a generated phrase, words retain the relative order
// they had in the source list used to build it.
type Generator struct {
	minLength int
	maxLength int
	maxInput  int
}

// NewGenerator builds a generator from an already-validated engine config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		minLength: cfg.MinLength,
		maxLength: cfg.MaxLength,
		maxInput:  cfg.MaxInputKeywords,
	}
}

// Generate enumerates candidate phrases from seven source groupings:
// each field alone, each field pair, and the three-way cross. A pair combo
// is kept only if it uses at least one word from each of its two fields and
// none from the third; a three-way combo must use a word from every field.
// The result is deduplicated by exact phrase text and deterministic for
// identical inputs.
func (g *Generator) Generate(fields FieldTokens) []domain.CandidatePhrase {
	title, subtitle, keywords := g.capInput(fields)

	inTitle := toSet(title)
	inSubtitle := toSet(subtitle)
	inKeywords := toSet(keywords)

	seen := make(map[string]struct{})
	phrases := []domain.CandidatePhrase{}
	add := func(words []string) bool {
		if len(phrases) >= maxCandidates {
			return false
		}
		text := strings.Join(words, " ")
		if _, dup := seen[text]; dup {
			return true
		}
		seen[text] = struct{}{}
		phrases = append(phrases, domain.CandidatePhrase{
			Text:  text,
			Words: append([]string(nil), words...),
		})
		return true
	}

	// Single-field combinations.
	g.combine(title, add)
	g.combine(subtitle, add)
	g.combine(keywords, add)

	// Pairwise cross combinations: drawn from the concatenation of the two
	// lists, kept only if both fields contribute and the excluded field does
	// not appear at all.
	g.combine(dedupConcat(title, subtitle), func(words []string) bool {
		if !anyIn(words, inTitle) || !anyIn(words, inSubtitle) || anyIn(words, inKeywords) {
			return true
		}
		return add(words)
	})
	g.combine(dedupConcat(title, keywords), func(words []string) bool {
		if !anyIn(words, inTitle) || !anyIn(words, inKeywords) || anyIn(words, inSubtitle) {
			return true
		}
		return add(words)
	})
	g.combine(dedupConcat(subtitle, keywords), func(words []string) bool {
		if !anyIn(words, inSubtitle) || !anyIn(words, inKeywords) || anyIn(words, inTitle) {
			return true
		}
		return add(words)
	})

	// Three-way cross: every field must contribute at least one word.
	g.combine(dedupConcat(dedupConcat(title, subtitle), keywords), func(words []string) bool {
		if !anyIn(words, inTitle) || !anyIn(words, inSubtitle) || !anyIn(words, inKeywords) {
			return true
		}
		return add(words)
	})

	return phrases
}

// capInput applies the hard ceiling on total input keywords considered,
// consuming the budget in field order (title first). The ceiling is a
// documented safety bound against combinatorial explosion, not a tuning
// knob.
func (g *Generator) capInput(fields FieldTokens) (title, subtitle, keywords []string) {
	budget := g.maxInput
	take := func(list []string) []string {
		if len(list) > budget {
			list = list[:budget]
		}
		budget -= len(list)
		return list
	}
	return take(fields.Title), take(fields.Subtitle), take(fields.Keywords)
}

// combine emits every order-preserving selection of minLength..maxLength
// words from the list. The visit callback returns false to stop enumeration
// early (candidate ceiling reached).
func (g *Generator) combine(words []string, visit func([]string) bool) {
	maxLen := g.maxLength
	if maxLen > len(words) {
		maxLen = len(words)
	}

	current := make([]string, 0, maxLen)
	var walk func(start int) bool
	walk = func(start int) bool {
		if len(current) >= g.minLength {
			if !visit(append([]string(nil), current...)) {
				return false
			}
		}
		if len(current) == maxLen {
			return true
		}
		for i := start; i < len(words); i++ {
			current = append(current, words[i])
			ok := walk(i + 1)
			current = current[:len(current)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(0)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func anyIn(words []string, set map[string]struct{}) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

// dedupConcat concatenates two token lists, dropping later duplicates so a
// word shared between fields cannot pair with itself in one phrase.
func dedupConcat(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, w := range a {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		merged = append(merged, w)
	}
	for _, w := range b {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		merged = append(merged, w)
	}
	return merged
}
