package catalog

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"coursescout-backend/lib/scrapers/igps"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.NoError(t, err)

	require.Equal(t,
		"course_id,title,credits,department,level,description,terms_offered\n",
		buf.String(),
	)
}

func TestWriteCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []igps.Course{{
		ID:          "CSCI-C200",
		Title:       `Computing, "An Introduction"`,
		Credits:     "3",
		Department:  "CSCI",
		Level:       "200",
		Description: "Line one.\nLine two.",
	}})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, `Computing, "An Introduction"`, rows[1][1])
	require.Equal(t, "Line one.\nLine two.", rows[1][5])
}

func TestCSVRoundTrip(t *testing.T) {
	courses := []igps.Course{
		{
			ID: "CSCI-C200 Intro", Title: "Introduction to Computing", Credits: "3 credits",
			Department: "CSCI", Level: "200",
			Description:  "Course Description: A first programming course.",
			TermsOffered: "Typically Offered: Fall 2024, Spring 2025",
		},
		{
			ID: "MATH-M301", Title: "Linear Algebra", Credits: "4",
			Department: "MATH", Level: "300",
			Description:  "Matrices and vector spaces.",
			TermsOffered: "Spring 2025",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, courses))

	records, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, records, len(courses))

	require.Equal(t, Record{
		ID: "CSCI-C200 Intro", Title: "Introduction to Computing",
		Credits: 3, Department: "CSCI", Level: 200,
		Description:  "A first programming course.",
		TermsOffered: []string{"Fall 2024", "Spring 2025"},
	}, records[0])
	require.Equal(t, Record{
		ID: "MATH-M301", Title: "Linear Algebra",
		Credits: 4, Department: "MATH", Level: 300,
		Description:  "Matrices and vector spaces.",
		TermsOffered: []string{"Spring 2025"},
	}, records[1])
}

func TestReadCSVHeaderOnly(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(
		"course_id,title,credits,department,level,description,terms_offered\n",
	))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("course_id,title\nCSCI-C200,Intro\n"))
	require.ErrorContains(t, err, "missing column")
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.ErrorContains(t, err, "no header row")
}

func TestParseCredits(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{"3", 3},
		{"3 credits", 3},
		{"1.5", 2},
		{"CR: 4", 4},
		{"garbage", defaultCredits},
		{"", defaultCredits},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, parseCredits(test.raw), test.raw)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{"200", 200},
		{"level 300", 300},
		{"", defaultLevel},
		{"abc", defaultLevel},
		{"900", defaultLevel}, // outside the plausible range
		{"25", defaultLevel},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, parseLevel(test.raw), test.raw)
	}
}
