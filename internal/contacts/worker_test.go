package contacts

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/wptechprodigy/mail-sonic/internal/models"
	"github.com/wptechprodigy/mail-sonic/internal/testutil"
)

func TestWorker_SQLite(t *testing.T) {
	runWorkerSuite(t, func(t *testing.T) *sqlx.DB {
		return testutil.NewTestDB(t)
	})
}

func TestWorker_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	handle := testutil.NewTestPostgresDB(t)
	runWorkerSuite(t, func(t *testing.T) *sqlx.DB {
		_, err := handle.Exec(`DELETE FROM contacts`)
		require.NoError(t, err)
		return handle
	})
}

// runWorkerSuite exercises a Worker against a fresh datastore per subtest.
func runWorkerSuite(t *testing.T, newDB func(t *testing.T) *sqlx.DB) {
	ctx := context.Background()

	t.Run("list on empty store returns empty slice", func(t *testing.T) {
		contacts, err := NewWorker(newDB(t)).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})

	t.Run("add then list returns the stored contact with a stable id", func(t *testing.T) {
		handle := newDB(t)

		added, err := NewWorker(handle).Add(ctx, models.ContactInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, added.ID)
		assert.Equal(t, "A", added.Name)
		assert.Equal(t, "a@x.com", added.Email)

		first, err := NewWorker(handle).List(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, added, first[0])

		second, err := NewWorker(handle).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		handle := newDB(t)
		worker := NewWorker(handle)
		clock := time.Unix(1700000000, 0)
		worker.now = func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}

		var ids []string
		for i := 0; i < 3; i++ {
			c, err := worker.Add(ctx, models.ContactInput{Name: fmt.Sprintf("c%d", i), Email: "same@x.com"})
			require.NoError(t, err)
			ids = append(ids, c.ID)
		}

		contacts, err := worker.List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 3)
		for i, c := range contacts {
			assert.Equal(t, ids[i], c.ID)
		}
	})

	t.Run("duplicate emails are allowed", func(t *testing.T) {
		worker := NewWorker(newDB(t))

		first, err := worker.Add(ctx, models.ContactInput{Name: "One", Email: "dup@x.com"})
		require.NoError(t, err)
		second, err := worker.Add(ctx, models.ContactInput{Name: "Two", Email: "dup@x.com"})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("update overwrites name and email and echoes input", func(t *testing.T) {
		handle := newDB(t)
		added, err := NewWorker(handle).Add(ctx, models.ContactInput{Name: "Old", Email: "old@x.com"})
		require.NoError(t, err)

		updated, err := NewWorker(handle).Update(ctx, added.ID, models.ContactInput{Name: "New", Email: "new@x.com"})
		require.NoError(t, err)
		assert.Equal(t, models.Contact{ID: added.ID, Name: "New", Email: "new@x.com"}, updated)

		contacts, err := NewWorker(handle).List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, updated, contacts[0])
	})

	t.Run("update of unknown id is a no-op", func(t *testing.T) {
		handle := newDB(t)
		worker := NewWorker(handle)
		_, err := worker.Add(ctx, models.ContactInput{Name: "Keep", Email: "keep@x.com"})
		require.NoError(t, err)

		before, err := worker.List(ctx)
		require.NoError(t, err)

		echoed, err := worker.Update(ctx, "does-not-exist", models.ContactInput{Name: "Ghost", Email: "ghost@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "does-not-exist", echoed.ID)
		assert.Equal(t, "Ghost", echoed.Name)

		after, err := worker.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("delete twice succeeds both times", func(t *testing.T) {
		handle := newDB(t)
		added, err := NewWorker(handle).Add(ctx, models.ContactInput{Name: "Gone", Email: "gone@x.com"})
		require.NoError(t, err)

		require.NoError(t, NewWorker(handle).Delete(ctx, added.ID))
		require.NoError(t, NewWorker(handle).Delete(ctx, added.ID))

		contacts, err := NewWorker(handle).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})

	t.Run("concurrent adds each get a unique id", func(t *testing.T) {
		handle := newDB(t)
		const n = 20

		var g errgroup.Group
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				_, err := NewWorker(handle).Add(ctx, models.ContactInput{
					Name:  fmt.Sprintf("contact-%d", i),
					Email: fmt.Sprintf("c%d@x.com", i),
				})
				return err
			})
		}
		require.NoError(t, g.Wait())

		contacts, err := NewWorker(handle).List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, n)

		seen := make(map[string]bool, n)
		for _, c := range contacts {
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
		}
	})
}

func TestWorker_StoreErrors(t *testing.T) {
	ctx := context.Background()
	handle := testutil.NewTestDB(t)
	require.NoError(t, handle.Close())

	worker := NewWorker(handle)

	_, err := worker.List(ctx)
	assertStoreError(t, err, "list")

	_, err = worker.Add(ctx, models.ContactInput{Name: "A", Email: "a@x.com"})
	assertStoreError(t, err, "add")

	_, err = worker.Update(ctx, "id", models.ContactInput{Name: "A", Email: "a@x.com"})
	assertStoreError(t, err, "update")

	err = worker.Delete(ctx, "id")
	assertStoreError(t, err, "delete")
}

func assertStoreError(t *testing.T, err error, op string) {
	t.Helper()
	require.Error(t, err)

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr), "expected StoreError, got %T", err)
	assert.Equal(t, op, storeErr.Op)
	assert.NotNil(t, errors.Unwrap(err))
}
