package item_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgha/statusapi/internal/item"
)

// fakeRow satisfies pgx.Row with a canned scan function.
type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeRows satisfies pgx.Rows, yielding one scan function per row.
type fakeRows struct {
	scans []func(dest ...any) error
	pos   int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.scans) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error { return r.scans[r.pos-1](dest...) }
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

// fakeDB satisfies item.DB, recording the last query and its arguments.
// Exec calls (schema ensure, mutations) all return execTag.
type fakeDB struct {
	rows     *fakeRows
	row      fakeRow
	execTag  pgconn.CommandTag
	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.rows, nil
}

func (f *fakeDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return f.execTag, nil
}

func TestList_ClampsLimitAndSkip(t *testing.T) {
	cases := []struct {
		name      string
		filter    item.ListFilter
		wantSkip  int
		wantLimit int
	}{
		{"limit above cap is clamped", item.ListFilter{Limit: 5000}, 0, 1000},
		{"zero limit defaults", item.ListFilter{}, 0, 100},
		{"negative skip defaults", item.ListFilter{Skip: -4, Limit: 10}, 0, 10},
		{"values in range pass through", item.ListFilter{Skip: 20, Limit: 50}, 20, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &fakeDB{rows: &fakeRows{}}
			repo := item.NewRepository(db)

			_, err := repo.List(context.Background(), tc.filter)
			require.NoError(t, err)

			require.Len(t, db.lastArgs, 2)
			assert.Equal(t, tc.wantSkip, db.lastArgs[0])
			assert.Equal(t, tc.wantLimit, db.lastArgs[1])
		})
	}
}

func TestList_ActiveOnlyFiltersQuery(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	repo := item.NewRepository(db)

	_, err := repo.List(context.Background(), item.ListFilter{ActiveOnly: true})
	require.NoError(t, err)

	assert.Contains(t, db.lastSQL, "is_active = TRUE")
}

func TestList_DropsUndecodableRows(t *testing.T) {
	desc := "still here"
	good := func(dest ...any) error {
		*dest[0].(*int64) = 7
		*dest[1].(*string) = "widget"
		*dest[2].(**string) = &desc
		*dest[3].(*float64) = 9.99
		*dest[4].(*bool) = true
		return nil
	}
	bad := func(dest ...any) error {
		return errors.New("cannot decode numeric")
	}

	db := &fakeDB{rows: &fakeRows{scans: []func(dest ...any) error{good, bad, good}}}
	repo := item.NewRepository(db)

	items, err := repo.List(context.Background(), item.ListFilter{})
	require.NoError(t, err)

	// The malformed row is dropped, not fatal to the listing.
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "widget", it.Name)
	}
}

func TestList_NeverReturnsNil(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	repo := item.NewRepository(db)

	items, err := repo.List(context.Background(), item.ListFilter{})
	require.NoError(t, err)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetByID_MapsNoRowsToNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := item.NewRepository(db)

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestDelete_NoRowsAffectedIsNotFound(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := item.NewRepository(db)

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestDelete_RowAffectedSucceeds(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := item.NewRepository(db)

	err := repo.Delete(context.Background(), 42)

	assert.NoError(t, err)
}
