package domain

// Field identifies a metadata text field on an app store listing.
type Field string

const (
	FieldTitle    Field = "title"
	FieldSubtitle Field = "subtitle"
	FieldKeywords Field = "keywords_field"
	// FieldPromoText is reserved: promo text is tokenized and carried on the
	// input, but is not yet a combination source.
	FieldPromoText Field = "promo_text"
)

// Metadata holds the raw listing fields an analysis runs against.
// The keywords field is comma-delimited; the other fields are free text.
type Metadata struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	KeywordsField string `json:"keywords_field"`
	PromoText     string `json:"promo_text,omitempty"`
}

// CandidatePhrase is an immutable candidate keyword combination: the
// space-joined phrase text plus its constituent words (2-4 of them).
type CandidatePhrase struct {
	Text  string   `json:"text"`
	Words []string `json:"words"`
}

// Length returns the number of words in the phrase.
func (p CandidatePhrase) Length() int {
	return len(p.Words)
}

// FieldMatch records how a phrase relates to a single metadata field.
// Consecutive means the field's normalized text contains the phrase as an
// exact contiguous run of words; Exists without IsConsecutive means the words
// appear in the field in phrase order but not contiguously (subsequence).
type FieldMatch struct {
	Exists        bool `json:"exists"`
	IsConsecutive bool `json:"is_consecutive"`
}

// StrengthTier is the ranking-strength bucket a combination is classified
// into. Tiers are ordered: classification evaluates them top to bottom and
// the first matching rule wins.
type StrengthTier string

const (
	TierTitleConsecutive       StrengthTier = "TITLE_CONSECUTIVE"
	TierTitleNonConsecutive    StrengthTier = "TITLE_NON_CONSECUTIVE"
	TierTitleKeywordsCross     StrengthTier = "TITLE_KEYWORDS_CROSS"
	TierCrossElement           StrengthTier = "CROSS_ELEMENT"
	TierKeywordsConsecutive    StrengthTier = "KEYWORDS_CONSECUTIVE"
	TierSubtitleConsecutive    StrengthTier = "SUBTITLE_CONSECUTIVE"
	TierKeywordsSubtitleCross  StrengthTier = "KEYWORDS_SUBTITLE_CROSS"
	TierKeywordsNonConsecutive StrengthTier = "KEYWORDS_NON_CONSECUTIVE"
	TierSubtitleNonConsecutive StrengthTier = "SUBTITLE_NON_CONSECUTIVE"
	TierThreeWayCross          StrengthTier = "THREE_WAY_CROSS"
	TierMissing                StrengthTier = "MISSING"
)

// AllTiers lists every tier in classification order, strongest first.
var AllTiers = []StrengthTier{
	TierTitleConsecutive,
	TierTitleNonConsecutive,
	TierTitleKeywordsCross,
	TierCrossElement,
	TierKeywordsConsecutive,
	TierSubtitleConsecutive,
	TierKeywordsSubtitleCross,
	TierKeywordsNonConsecutive,
	TierSubtitleNonConsecutive,
	TierThreeWayCross,
	TierMissing,
}

var tierScores = map[StrengthTier]int{
	TierTitleConsecutive:       100,
	TierTitleNonConsecutive:    85,
	TierTitleKeywordsCross:     70,
	TierCrossElement:           70,
	TierKeywordsConsecutive:    50,
	TierSubtitleConsecutive:    50,
	TierKeywordsSubtitleCross:  35,
	TierKeywordsNonConsecutive: 30,
	TierSubtitleNonConsecutive: 30,
	TierThreeWayCross:          20,
	TierMissing:                0,
}

// Score returns the tier's fixed strength score (0-100).
func (t StrengthTier) Score() int {
	return tierScores[t]
}

var tierSuggestions = map[StrengthTier]string{
	TierTitleNonConsecutive:    "reorder the title so these words are adjacent",
	TierTitleKeywordsCross:     "move the keyword-field words into the title",
	TierCrossElement:           "consolidate all words into the title",
	TierKeywordsConsecutive:    "move to the title and keep the words adjacent",
	TierSubtitleConsecutive:    "move to the title and keep the words adjacent",
	TierKeywordsSubtitleCross:  "consolidate into a single field, ideally the title",
	TierKeywordsNonConsecutive: "reorder the keyword field so these words are adjacent, or move them to the title",
	TierSubtitleNonConsecutive: "reorder the subtitle so these words are adjacent, or move them to the title",
	TierThreeWayCross:          "consolidate the words into fewer fields, ideally the title",
}

// Suggestion returns the templated metadata edit that would promote a combo
// in this tier. Empty for the top tier and for MISSING.
func (t StrengthTier) Suggestion() string {
	return tierSuggestions[t]
}

// CanStrengthen reports whether a metadata edit could promote a combo in
// this tier. The top tier has no upside and MISSING has nothing to move.
func (t StrengthTier) CanStrengthen() bool {
	return t != TierTitleConsecutive && t != TierMissing
}

// ClassifiedCombo is the classifier's verdict for one candidate phrase.
// Immutable once created.
type ClassifiedCombo struct {
	Phrase        CandidatePhrase `json:"phrase"`
	Tier          StrengthTier    `json:"tier"`
	IsConsecutive bool            `json:"is_consecutive"`
	CanStrengthen bool            `json:"can_strengthen"`
	Suggestion    string          `json:"suggestion,omitempty"`
}
