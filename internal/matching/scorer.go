// Package matching implements the mentor-mentee match scorer: a keyword
// overlap heuristic over career fields, interest tags and mentor expertise.
package matching

import (
	"sort"
	"strings"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

const (
	// MatchThreshold is the minimum score a mentor must reach to be returned
	MatchThreshold = 8

	// MaxMatches caps the number of mentors returned per query
	MaxMatches = 6

	// minTokenLength filters out short words before token comparison
	minTokenLength = 4
)

// Scoring weights. Each (interest, expertise-tag) pair is scored once with
// the strongest applicable rule.
const (
	fieldExactScore       = 10
	pairSubstringScore    = 8
	pairDomainVocabScore  = 6
	pairTokenOverlapScore = 3
	fieldWordScore        = 3
	locationExactScore    = 2
	availableScore        = 5
	busyScore             = 2
	seniorityScore        = 1
	seniorityYears        = 5
)

// Domain keyword vocabularies. A pair scores against a vocabulary only when
// the mentee's own career field belongs to that domain.
var (
	technologyTerms = []string{
		"software", "programming", "coding", "development", "engineering",
		"data", "cloud", "devops", "security", "web", "mobile", "product",
		"machine learning", "ai", "design",
	}

	businessTerms = []string{
		"business", "startup", "entrepreneur", "marketing", "sales",
		"finance", "strategy", "management", "leadership", "operations",
		"consulting", "investment",
	}

	healthTerms = []string{
		"health", "medicine", "medical", "nursing", "clinical", "pharmacy",
		"care", "biology", "research", "therapy",
	}
)

// RankedMentor pairs a mentor with their computed match score
type RankedMentor struct {
	Mentor *models.Mentor `json:"mentor"`
	Score  int            `json:"score"`
}

// FindMatches scores every mentor in the pool against the mentee profile and
// returns those at or above the threshold, best first, capped at MaxMatches.
// Ties break by ascending mentor ID so results are deterministic. An empty
// result is a valid outcome, not an error.
func FindMatches(mentee *models.Mentee, pool []*models.Mentor) []RankedMentor {
	ranked := make([]RankedMentor, 0, len(pool))

	for _, mentor := range pool {
		score := Score(mentee, mentor)
		if score >= MatchThreshold {
			ranked = append(ranked, RankedMentor{Mentor: mentor, Score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Mentor.ID < ranked[j].Mentor.ID
	})

	if len(ranked) > MaxMatches {
		ranked = ranked[:MaxMatches]
	}

	return ranked
}

// Score computes the integer match score between a mentee profile and one mentor
func Score(mentee *models.Mentee, mentor *models.Mentor) int {
	score := 0

	if mentor.Field == mentee.CareerField {
		score += fieldExactScore
	}

	vocab := domainVocabulary(mentee.CareerField)

	for _, interest := range mentee.Interests {
		i := strings.ToLower(strings.TrimSpace(interest))
		if i == "" {
			continue
		}

		for _, tag := range mentor.Expertise {
			t := strings.ToLower(strings.TrimSpace(tag))
			if t == "" {
				continue
			}

			switch {
			case strings.Contains(i, t) || strings.Contains(t, i):
				score += pairSubstringScore
			case vocab != nil && containsAny(i, vocab) && containsAny(t, vocab):
				score += pairDomainVocabScore
			case tokensOverlap(i, t):
				score += pairTokenOverlapScore
			}
		}
	}

	if fieldWordInExpertise(mentee.CareerField, mentor.Expertise) {
		score += fieldWordScore
	}

	if mentor.Location != "" && mentor.Location == mentee.Location {
		score += locationExactScore
	}

	switch mentor.Availability {
	case models.AvailabilityAvailable:
		score += availableScore
	case models.AvailabilityBusy:
		score += busyScore
	}

	if mentor.YearsOfExperience >= seniorityYears {
		score += seniorityScore
	}

	return score
}

// domainVocabulary maps a mentee career field to its keyword vocabulary,
// or nil when the field belongs to none of the keyword domains.
func domainVocabulary(careerField string) []string {
	field := strings.ToLower(careerField)

	switch {
	case strings.Contains(field, "tech") || strings.Contains(field, "software"):
		return technologyTerms
	case strings.Contains(field, "business") || strings.Contains(field, "entrepreneur") ||
		strings.Contains(field, "finance") || strings.Contains(field, "banking"):
		return businessTerms
	case strings.Contains(field, "health") || strings.Contains(field, "medicine"):
		return healthTerms
	default:
		return nil
	}
}

// containsAny reports whether s contains any of the vocabulary terms
func containsAny(s string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// tokensOverlap reports whether any long-enough word of a is a substring of a
// long-enough word of b, or vice versa
func tokensOverlap(a, b string) bool {
	aTokens := tokenize(a)
	bTokens := tokenize(b)

	for _, at := range aTokens {
		for _, bt := range bTokens {
			if strings.Contains(at, bt) || strings.Contains(bt, at) {
				return true
			}
		}
	}
	return false
}

// fieldWordInExpertise reports whether any long-enough word of the mentee's
// career field appears inside one of the mentor's expertise tags
func fieldWordInExpertise(careerField string, expertise []string) bool {
	words := tokenize(strings.ToLower(careerField))
	if len(words) == 0 {
		return false
	}

	for _, tag := range expertise {
		t := strings.ToLower(tag)
		for _, word := range words {
			if strings.Contains(t, word) {
				return true
			}
		}
	}
	return false
}

// tokenize splits s into lowercase word tokens longer than minTokenLength-1 characters
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, strings.ToLower(f))
		}
	}
	return tokens
}
