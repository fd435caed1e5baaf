package engine

import (
	"strings"

	"yodel.app/insight/internal/domain"
)

// FieldTexts carries the normalized per-field text matching runs against.
// Free-text fields come from NormalizeFreeText, the keywords field from
// NormalizeKeywordsField.
type FieldTexts struct {
	Title    string
	Subtitle string
	Keywords string
}

// NewFieldTexts normalizes raw metadata into matchable field texts.
func NewFieldTexts(meta domain.Metadata) FieldTexts {
	return FieldTexts{
		Title:    NormalizeFreeText(meta.Title),
		Subtitle: NormalizeFreeText(meta.Subtitle),
		Keywords: NormalizeKeywordsField(meta.KeywordsField),
	}
}

// MatchField computes presence and consecutiveness of a phrase within one
// normalized field text. Consecutive means the field contains the phrase as
// a contiguous run of whole words. Failing that, a greedy left-to-right
// subsequence scan over the field's token stream decides plain existence.
func MatchField(phrase domain.CandidatePhrase, fieldText string) domain.FieldMatch {
	if fieldText == "" || phrase.Text == "" {
		return domain.FieldMatch{}
	}

	// Pad with spaces so "ice cream" does not match inside "rice cream".
	if strings.Contains(" "+fieldText+" ", " "+phrase.Text+" ") {
		return domain.FieldMatch{Exists: true, IsConsecutive: true}
	}

	if isSubsequence(phrase.Words, strings.Fields(fieldText)) {
		return domain.FieldMatch{Exists: true, IsConsecutive: false}
	}

	return domain.FieldMatch{}
}

// isSubsequence greedily finds each phrase word after the previous match
// position. Greedy matching is exact here: each phrase word is matched to
// its earliest possible occurrence, and taking any later occurrence instead
// can only shrink what remains for the following words, so backtracking
// cannot turn a failure into a success even with repeated tokens.
func isSubsequence(words, stream []string) bool {
	pos := 0
	for _, w := range words {
		found := false
		for ; pos < len(stream); pos++ {
			if stream[pos] == w {
				pos++
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchState is everything the classification rules look at: the per-field
// phrase matches plus word-level presence for the cross tiers, where a
// combo's words are split across fields and no single field contains the
// whole phrase.
type matchState struct {
	title    domain.FieldMatch
	subtitle domain.FieldMatch
	keywords domain.FieldMatch

	// At least one phrase word occurs in the field.
	inTitle    bool
	inSubtitle bool
	inKeywords bool

	// Every phrase word occurs in the union of the named fields.
	coveredTS  bool
	coveredTK  bool
	coveredSK  bool
	coveredAll bool
}

// classificationRule pairs a tier with its predicate over the match state.
type classificationRule struct {
	tier domain.StrengthTier
	when func(m matchState) bool
}

// classificationRules is the decision procedure: rules are evaluated in this
// exact order and the first match wins. Several conditions overlap (e.g.
// three-way cross vs. pairwise cross); the ordering is what disambiguates
// them, so it is load-bearing and must not be reordered. The cross tiers
// match either the whole phrase in both named fields or a word-level split
// between them.
var classificationRules = []classificationRule{
	{domain.TierTitleConsecutive, func(m matchState) bool {
		return m.title.Exists && m.title.IsConsecutive
	}},
	{domain.TierTitleNonConsecutive, func(m matchState) bool {
		return m.title.Exists && !m.title.IsConsecutive && !m.subtitle.Exists && !m.keywords.Exists
	}},
	{domain.TierTitleKeywordsCross, func(m matchState) bool {
		return (m.title.Exists && m.keywords.Exists && !m.subtitle.Exists) ||
			(m.coveredTK && m.inTitle && m.inKeywords && !m.inSubtitle)
	}},
	{domain.TierCrossElement, func(m matchState) bool {
		return (m.title.Exists && m.subtitle.Exists && !m.keywords.Exists) ||
			(m.coveredTS && m.inTitle && m.inSubtitle && !m.inKeywords)
	}},
	{domain.TierKeywordsConsecutive, func(m matchState) bool {
		return m.keywords.Exists && m.keywords.IsConsecutive && !m.title.Exists && !m.subtitle.Exists
	}},
	{domain.TierSubtitleConsecutive, func(m matchState) bool {
		return m.subtitle.Exists && m.subtitle.IsConsecutive && !m.title.Exists && !m.keywords.Exists
	}},
	{domain.TierKeywordsSubtitleCross, func(m matchState) bool {
		return (m.keywords.Exists && m.subtitle.Exists && !m.title.Exists) ||
			(m.coveredSK && m.inKeywords && m.inSubtitle && !m.inTitle)
	}},
	{domain.TierKeywordsNonConsecutive, func(m matchState) bool {
		return m.keywords.Exists && !m.keywords.IsConsecutive && !m.title.Exists && !m.subtitle.Exists
	}},
	{domain.TierSubtitleNonConsecutive, func(m matchState) bool {
		return m.subtitle.Exists && !m.subtitle.IsConsecutive && !m.title.Exists && !m.keywords.Exists
	}},
	{domain.TierThreeWayCross, func(m matchState) bool {
		return m.coveredAll && m.inTitle && m.inSubtitle && m.inKeywords
	}},
}

func newMatchState(phrase domain.CandidatePhrase, fields FieldTexts) matchState {
	return matchState{
		title:      MatchField(phrase, fields.Title),
		subtitle:   MatchField(phrase, fields.Subtitle),
		keywords:   MatchField(phrase, fields.Keywords),
		inTitle:    anyWordIn(phrase.Words, fields.Title),
		inSubtitle: anyWordIn(phrase.Words, fields.Subtitle),
		inKeywords: anyWordIn(phrase.Words, fields.Keywords),
		coveredTS:  allWordsIn(phrase.Words, fields.Title, fields.Subtitle),
		coveredTK:  allWordsIn(phrase.Words, fields.Title, fields.Keywords),
		coveredSK:  allWordsIn(phrase.Words, fields.Subtitle, fields.Keywords),
		coveredAll: allWordsIn(phrase.Words, fields.Title, fields.Subtitle, fields.Keywords),
	}
}

// wordInField reports whether a single token occurs in the field text as a
// whole word. Keywords-field tokens may themselves be multi-word entries, so
// this is substring containment with space padding, not a set lookup.
func wordInField(w, fieldText string) bool {
	if w == "" || fieldText == "" {
		return false
	}
	return strings.Contains(" "+fieldText+" ", " "+w+" ")
}

func anyWordIn(words []string, fieldText string) bool {
	for _, w := range words {
		if wordInField(w, fieldText) {
			return true
		}
	}
	return false
}

// allWordsIn reports whether every word occurs in at least one of the field
// texts.
func allWordsIn(words []string, fieldTexts ...string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		found := false
		for _, text := range fieldTexts {
			if wordInField(w, text) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Classify maps a candidate phrase to exactly one strength tier. It is
// total: any state no rule matches falls through to MISSING, so it never
// fails.
func Classify(phrase domain.CandidatePhrase, fields FieldTexts) domain.ClassifiedCombo {
	m := newMatchState(phrase, fields)

	tier := domain.TierMissing
	for _, rule := range classificationRules {
		if rule.when(m) {
			tier = rule.tier
			break
		}
	}

	consecutive := (m.title.Exists && m.title.IsConsecutive) ||
		(m.subtitle.Exists && m.subtitle.IsConsecutive) ||
		(m.keywords.Exists && m.keywords.IsConsecutive)

	return domain.ClassifiedCombo{
		Phrase:        phrase,
		Tier:          tier,
		IsConsecutive: consecutive,
		CanStrengthen: tier.CanStrengthen(),
		Suggestion:    tier.Suggestion(),
	}
}
