package catalog

import (
	"sort"
	"strings"

	"coursescout-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

type SearchQuery struct {
	// Keyword ranks against course titles and descriptions.
	Keyword string
	// Department filters by normalized substring match.
	Department string
	// Level filters exactly when positive.
	Level int
	// Max caps the result count; DefaultSearchMax when zero.
	Max int
}

const DefaultSearchMax = 5

type Match struct {
	Record Record
	Score  float64
}

// descriptionHitScore is what a plain substring hit in the description is
// worth; title similarity can rank above it but a weak fuzzy match cannot.
const descriptionHitScore = 0.9

// Search filters and ranks records against the query. No keyword means
// every filtered record matches with full score, in id order.
func Search(records []Record, query SearchQuery) []Match {
	max := query.Max
	if max <= 0 {
		max = DefaultSearchMax
	}

	keyword := strings.ToLower(strings.TrimSpace(query.Keyword))
	department := textutil.NormalizeName(query.Department)

	var matches []Match
	for _, r := range records {
		if department != "" && !strings.Contains(textutil.NormalizeName(r.Department), department) {
			continue
		}
		if query.Level > 0 && r.Level != query.Level {
			continue
		}

		score := 1.0
		if keyword != "" {
			score = matchr.JaroWinkler(keyword, strings.ToLower(r.Title), false)
			if strings.Contains(strings.ToLower(r.Description), keyword) && score < descriptionHitScore {
				score = descriptionHitScore
			}
		}
		matches = append(matches, Match{Record: r, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Record.ID < matches[j].Record.ID
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	return matches
}
