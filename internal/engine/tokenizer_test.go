package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"yodel.app/insight/internal/engine"
)

var _ = Describe("Tokenizer", func() {
	Describe("TokenizeFreeText", func() {
		It("lowercases, strips punctuation and splits on whitespace", func() {
			tokens := engine.TokenizeFreeText("Meditation: Sleep & Relax!")
			Expect(tokens).To(Equal([]string{"meditation", "sleep", "relax"}))
		})

		It("drops stopwords and single-character tokens", func() {
			tokens := engine.TokenizeFreeText("The Best App for a Good Night of Sleep")
			Expect(tokens).To(Equal([]string{"best", "app", "good", "night", "sleep"}))
		})

		It("removes duplicate tokens while preserving first-seen order", func() {
			tokens := engine.TokenizeFreeText("sleep tracker sleep sounds")
			Expect(tokens).To(Equal([]string{"sleep", "tracker", "sounds"}))
		})

		It("returns an empty list for empty input", func() {
			Expect(engine.TokenizeFreeText("")).To(BeEmpty())
			Expect(engine.TokenizeFreeText("   ")).To(BeEmpty())
		})

		It("keeps digits", func() {
			tokens := engine.TokenizeFreeText("Sleep 101 Timer")
			Expect(tokens).To(Equal([]string{"sleep", "101", "timer"}))
		})
	})

	Describe("TokenizeKeywordsField", func() {
		It("splits on commas and trims entries", func() {
			tokens := engine.TokenizeKeywordsField("relaxation, breathing ,calm")
			Expect(tokens).To(Equal([]string{"relaxation", "breathing", "calm"}))
		})

		It("silently drops stray commas and whitespace-only entries", func() {
			tokens := engine.TokenizeKeywordsField(",relaxation,, ,breathing,")
			Expect(tokens).To(Equal([]string{"relaxation", "breathing"}))
		})

		It("keeps stopwords and short entries, users chose them explicitly", func() {
			tokens := engine.TokenizeKeywordsField("a,the,zen")
			Expect(tokens).To(Equal([]string{"a", "the", "zen"}))
		})

		It("lowercases and deduplicates", func() {
			tokens := engine.TokenizeKeywordsField("Calm,calm,CALM,zen")
			Expect(tokens).To(Equal([]string{"calm", "zen"}))
		})

		It("returns an empty list for empty input", func() {
			Expect(engine.TokenizeKeywordsField("")).To(BeEmpty())
		})
	})

	Describe("NormalizeFreeText", func() {
		It("keeps stopwords in the matchable text", func() {
			Expect(engine.NormalizeFreeText("Meditation & The Timer")).To(Equal("meditation the timer"))
		})
	})

	Describe("NormalizeKeywordsField", func() {
		It("joins entries with single spaces", func() {
			Expect(engine.NormalizeKeywordsField("relaxation, breathing")).To(Equal("relaxation breathing"))
		})
	})
})
