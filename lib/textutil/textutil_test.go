package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Computer Science", "computerscience"},
		{"  CSCI  ", "csci"},
		{"Data\tStructures\n", "datastructures"},
		{"", ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeName(test.input))
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Computer Science", []string{"science"}))
	require.True(t, MatchName("CSCI", []string{"nope", "csci"}))
	require.False(t, MatchName("Mathematics", []string{"csci"}))
	require.False(t, MatchName("Mathematics", nil))
}
