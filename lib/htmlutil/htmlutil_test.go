package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const fixturePage = `
<html><body>
	<div>
		<p class="meta">CSCI-C200</p>
		<p class="meta extra">should not match</p>
		<p class="meta">3 credits</p>
		<p class="desc long">Fall 2024</p>
		<p class="meta">
			Intro   to
			Computing
		</p>
		<span class="meta">wrong tag</span>
		<p class="desc long">An introduction.</p>
	</div>
</body></html>`

func parseFixture(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestTextStreamDocumentOrder(t *testing.T) {
	doc := parseFixture(t, fixturePage)

	stream := TextStream(context.Background(), doc, "p", "meta")
	require.Equal(t, []string{
		"CSCI-C200",
		"3 credits",
		"Intro to Computing",
	}, stream)
}

func TestTextStreamExactClassMatch(t *testing.T) {
	doc := parseFixture(t, fixturePage)

	// "desc long" must match only on the full attribute value
	require.Equal(t,
		[]string{"Fall 2024", "An introduction."},
		TextStream(context.Background(), doc, "p", "desc long"),
	)
	require.Empty(t, TextStream(context.Background(), doc, "p", "desc"))
	require.Empty(t, TextStream(context.Background(), doc, "p", "long"))
}

func TestTextStreamNoMatches(t *testing.T) {
	doc := parseFixture(t, fixturePage)

	stream := TextStream(context.Background(), doc, "p", "nonexistent")
	require.Empty(t, stream)
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  plain  ", "plain"},
		{"a\n\tb", "a b"},
		{"one  two   three", "one two three"},
		{"", ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.input))
	}
}
