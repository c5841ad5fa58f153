package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var searchFixture = []Record{
	{
		ID: "CSCI-C200", Title: "Introduction to Computing", Credits: 3,
		Department: "CSCI", Level: 200,
		Description: "A first programming course covering python basics.",
	},
	{
		ID: "CSCI-C343", Title: "Data Structures", Credits: 4,
		Department: "CSCI", Level: 300,
		Description: "Lists, trees, graphs and their algorithms.",
	},
	{
		ID: "MATH-M301", Title: "Linear Algebra", Credits: 4,
		Department: "MATH", Level: 300,
		Description: "Matrices and vector spaces.",
	},
	{
		ID: "HIST-H105", Title: "American History I", Credits: 3,
		Department: "HIST", Level: 100,
		Description: "Colonial era through reconstruction.",
	},
}

func TestSearchDepartmentFilter(t *testing.T) {
	matches := Search(searchFixture, SearchQuery{Department: "csci"})
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.Equal(t, "CSCI", m.Record.Department)
	}
}

func TestSearchLevelFilter(t *testing.T) {
	matches := Search(searchFixture, SearchQuery{Level: 300})
	require.Len(t, matches, 2)
	require.Equal(t, "CSCI-C343", matches[0].Record.ID)
	require.Equal(t, "MATH-M301", matches[1].Record.ID)
}

func TestSearchKeywordRanking(t *testing.T) {
	matches := Search(searchFixture, SearchQuery{Keyword: "data structures"})
	require.NotEmpty(t, matches)
	require.Equal(t, "CSCI-C343", matches[0].Record.ID)
}

func TestSearchDescriptionHit(t *testing.T) {
	matches := Search(searchFixture, SearchQuery{Keyword: "python"})
	require.NotEmpty(t, matches)
	// no title resembles "python", the description hit wins
	require.Equal(t, "CSCI-C200", matches[0].Record.ID)
	require.GreaterOrEqual(t, matches[0].Score, descriptionHitScore)
}

func TestSearchMax(t *testing.T) {
	matches := Search(searchFixture, SearchQuery{Max: 2})
	require.Len(t, matches, 2)

	matches = Search(searchFixture, SearchQuery{})
	require.Len(t, matches, len(searchFixture))
}

func TestSearchNoResults(t *testing.T) {
	require.Empty(t, Search(searchFixture, SearchQuery{Department: "phys"}))
	require.Empty(t, Search(nil, SearchQuery{}))
}
