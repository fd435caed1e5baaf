package engine

import (
	"regexp"
	"strings"
)

// stopwords are dropped from free-text fields: articles, conjunctions,
// common prepositions and auxiliary verbs. The keywords field is exempt
// because users chose those terms explicitly.
var stopwords = map[string]struct{}{
	// articles
	"a": {}, "an": {}, "the": {},
	// conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	// prepositions
	"at": {}, "by": {}, "for": {}, "from": {}, "in": {}, "into": {},
	"of": {}, "off": {}, "on": {}, "onto": {}, "out": {}, "over": {},
	"to": {}, "up": {}, "with": {}, "without": {}, "under": {},
	// auxiliary verbs
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "do": {}, "does": {}, "did": {},
	"have": {}, "has": {}, "had": {}, "can": {}, "could": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "may": {},
	"might": {}, "must": {},
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeFreeText lowercases a free-text field, replaces every non-word
// character with a space and collapses runs of whitespace. Stopwords are
// kept: this is the text consecutive (substring) matching runs against.
func NormalizeFreeText(text string) string {
	lowered := strings.ToLower(text)
	return strings.TrimSpace(nonWord.ReplaceAllString(lowered, " "))
}

// TokenizeFreeText turns a free-text field (title, subtitle, promo text)
// into an ordered list of distinct keyword tokens. Tokens of length <= 1
// and stopwords are dropped. Empty input yields an empty list.
func TokenizeFreeText(text string) []string {
	normalized := NormalizeFreeText(text)
	if normalized == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	tokens := []string{}
	for _, tok := range strings.Fields(normalized) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenizeKeywordsField splits the comma-delimited keywords field into an
// ordered list of distinct lowercase entries. No stopword or minimum-length
// filtering beyond non-empty: users explicitly chose these terms. Stray
// commas and whitespace-only entries are silently dropped.
func TokenizeKeywordsField(text string) []string {
	seen := make(map[string]struct{})
	tokens := []string{}
	for _, part := range strings.Split(text, ",") {
		entry := strings.ToLower(strings.TrimSpace(part))
		if entry == "" {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		tokens = append(tokens, entry)
	}
	return tokens
}

// NormalizeKeywordsField renders the keywords field as space-joined entries,
// the text consecutive matching runs against for that field.
func NormalizeKeywordsField(text string) string {
	return strings.Join(TokenizeKeywordsField(text), " ")
}
