package matching

import "sort"

// Candidate is one member of the population handed to FindMatches.
type Candidate struct {
	UserID string
	Skills []SkillRef
}

// MatchResult is the ephemeral ranking entry returned to the caller; it is
// never persisted.
type MatchResult struct {
	UserID       string      `json:"userId"`
	MatchScore   int         `json:"matchScore"`
	MutualSkills []SkillPair `json:"mutualSkills"`
}

// FindMatches scores every candidate against the querying user's skills and
// returns the positive-scoring ones ordered by score descending. The
// querying user's own id is skipped. Ties keep the population's incoming
// relative order, so results are deterministic for a given population.
func FindMatches(userID string, userSkills []SkillRef, population []Candidate) []MatchResult {
	var results []MatchResult
	for _, cand := range population {
		if cand.UserID == userID {
			continue
		}
		score := Score(userSkills, cand.Skills)
		if score <= 0 {
			continue
		}
		results = append(results, MatchResult{
			UserID:       cand.UserID,
			MatchScore:   score,
			MutualSkills: MutualSkills(userSkills, cand.Skills),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}
