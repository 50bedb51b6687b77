package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	id, err := s.Add(ctx, FormRecord{Title: "Expense Report", ConfigurationJSON: `{"formTitle":"Expense Report","fields":[]}`})
	require.NoError(t, err)
	require.NotZero(t, id)

	record, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Expense Report", record.Title)
	assert.Equal(t, StatusActive, record.Status)
	assert.Contains(t, record.ConfigurationJSON, "formTitle")
	assert.False(t, record.Created.IsZero())
}

func TestSQLiteStoreGetByIDNotFound(t *testing.T) {
	s := openTestDB(t)
	_, err := s.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreQueryOrdersByTitleNoCase(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	for _, title := range []string{"zeta", "Alpha", "beta"} {
		_, err := s.Add(ctx, FormRecord{Title: title})
		require.NoError(t, err)
	}
	_, err := s.Add(ctx, FormRecord{Title: "Hidden", Status: "Archived"})
	require.NoError(t, err)

	records, err := s.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	titles := make([]string, len(records))
	for i, record := range records {
		titles[i] = record.Title
	}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, titles)
}

func TestSQLiteStoreQueryLimit(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, FormRecord{Title: title})
		require.NoError(t, err)
	}

	records, err := s.Query(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
