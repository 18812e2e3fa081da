package usecase

import (
	"sort"

	"cafesight-backend/internal/insight/domain"
)

// summarySize is how many ranked candidates make the digest summary set.
const summarySize = 3

// RankCandidates orders candidates by score descending. The sort is stable,
// so candidates with equal scores keep rule-declaration order; that ordering
// is part of the contract, not an accident of map iteration.
func RankCandidates(candidates []domain.Candidate) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopSummary returns the first n ranked candidates.
func TopSummary(ranked []domain.Candidate, n int) []domain.Candidate {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// FocusCandidate picks the single most prominent insight: the highest-ranked
// warn or error candidate, falling back to the top-ranked candidate when
// nothing urgent fired.
func FocusCandidate(ranked []domain.Candidate) *domain.Candidate {
	for i := range ranked {
		if ranked[i].Severity == domain.SeverityWarn || ranked[i].Severity == domain.SeverityError {
			return &ranked[i]
		}
	}
	if len(ranked) > 0 {
		return &ranked[0]
	}
	return nil
}
