package engine

import (
	"sort"

	"yodel.app/insight/internal/domain"
)

// Selection is the budgeted top slice of scored combos. Truncated is set
// whenever more combos were generated than the budget allows, so callers
// always learn about the cut.
type Selection struct {
	Combos         []domain.ScoredCombo
	TotalGenerated int
	Truncated      bool
}

// SelectTop sorts combos by priority total descending and truncates to the
// budget. The sort is stable: equal totals keep generation order, which is
// what makes repeated runs byte-identical.
func SelectTop(combos []domain.ScoredCombo, budget int) Selection {
	ordered := append([]domain.ScoredCombo(nil), combos...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Total > ordered[j].Priority.Total
	})

	total := len(ordered)
	truncated := total > budget
	if truncated {
		ordered = ordered[:budget]
	}

	return Selection{Combos: ordered, TotalGenerated: total, Truncated: truncated}
}

// Summary are the per-run tally statistics, computed over everything that
// was generated, not just the selected slice.
type Summary struct {
	TierCounts    map[domain.StrengthTier]int
	Existing      int
	CoveragePct   float64
	CanStrengthen int
}

// Summarize tallies per-tier counts, coverage and the strengthenable count
// over the full generated set. Coverage is 0 for an empty run, never a
// division by zero.
func Summarize(combos []domain.ScoredCombo) Summary {
	counts := make(map[domain.StrengthTier]int, len(domain.AllTiers))
	canStrengthen := 0
	for _, c := range combos {
		counts[c.Tier]++
		if c.CanStrengthen {
			canStrengthen++
		}
	}

	total := len(combos)
	existing := total - counts[domain.TierMissing]
	coverage := 0.0
	if total > 0 {
		coverage = float64(existing) / float64(total) * 100
	}

	return Summary{
		TierCounts:    counts,
		Existing:      existing,
		CoveragePct:   coverage,
		CanStrengthen: canStrengthen,
	}
}
