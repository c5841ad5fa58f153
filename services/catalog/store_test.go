package catalog

import (
	"context"
	"testing"

	"coursescout-backend/lib/sqliteutil"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	db, err := sqliteutil.OpenDB(Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestStorePutList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	records := []Record{
		{
			ID: "MATH-M301", Title: "Linear Algebra", Credits: 4,
			Department: "MATH", Level: 300, Description: "Matrices.",
		},
		{
			ID: "CSCI-C200", Title: "Intro to Computing", Credits: 3,
			Department: "CSCI", Level: 200,
			Description:  "A first course.",
			TermsOffered: []string{"Fall 2024", "Spring 2025"},
		},
	}
	require.NoError(t, store.Put(ctx, records))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// listed in id order
	require.Equal(t, "CSCI-C200", got[0].ID)
	require.Equal(t, []string{"Fall 2024", "Spring 2025"}, got[0].TermsOffered)
	require.Equal(t, "MATH-M301", got[1].ID)
	require.Nil(t, got[1].TermsOffered)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestStoreUpsert(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	original := Record{ID: "CSCI-C200", Title: "Old Title", Credits: 3, Department: "CSCI", Level: 200}
	require.NoError(t, store.Put(ctx, []Record{original}))

	updated := original
	updated.Title = "New Title"
	updated.Credits = 4
	require.NoError(t, store.Put(ctx, []Record{updated}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "New Title", got[0].Title)
	require.Equal(t, 4, got[0].Credits)
}

func TestStorePutEmpty(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, nil))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}
