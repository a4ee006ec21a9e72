// Package matching ranks users by skill complementarity. It is pure and
// in-memory: callers fetch the population, matching only scores it.
package matching

import "strings"

// Score weights. An exact (case-insensitive) name match is the strongest
// complementarity signal; a category-only match is a weak same-domain
// signal. Raw sums are clamped to MaxScore.
const (
	exactMatchPoints    = 30
	categoryMatchPoints = 10

	MaxScore = 100
)

// SkillRef is the scoring view of a skill.
type SkillRef struct {
	Name     string
	Category string
}

// SkillPair links one of the querying user's skills to the first skill of
// the candidate that satisfies the match condition.
type SkillPair struct {
	UserSkill  string `json:"userSkill"`
	MatchSkill string `json:"matchSkill"`
}

func nameMatch(a, b SkillRef) bool {
	return strings.EqualFold(a.Name, b.Name)
}

func refMatch(a, b SkillRef) bool {
	return nameMatch(a, b) || a.Category == b.Category
}

// Score computes the complementarity score between two skill sets. Every
// pair across the sets contributes: exact name matches score higher than
// category-only matches, and a skill appearing in several pairings counts
// each time. The result is clamped to [0, MaxScore]. Either side empty
// scores 0. Excluding self-pairing is the caller's job.
func Score(a, b []SkillRef) int {
	score := 0
	for _, sa := range a {
		for _, sb := range b {
			if nameMatch(sa, sb) {
				score += exactMatchPoints
			} else if sa.Category == sb.Category {
				score += categoryMatchPoints
			}
		}
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// MutualSkills pairs each of the querying user's skills that matches
// anything in other with the first satisfying skill found.
func MutualSkills(user, other []SkillRef) []SkillPair {
	var pairs []SkillPair
	for _, s := range user {
		for _, o := range other {
			if refMatch(s, o) {
				pairs = append(pairs, SkillPair{UserSkill: s.Name, MatchSkill: o.Name})
				break
			}
		}
	}
	return pairs
}
