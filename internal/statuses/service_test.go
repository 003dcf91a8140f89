package statuses_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"github.com/sulthanallaudeen/priya-task/internal/testutil"
)

func TestService_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := statuses.NewService(db)
	ctx := testutil.TestContext(t)

	created, err := service.Create(ctx, "To Do")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "To Do", created.Name)

	_, err = service.Create(ctx, "In Progress")
	require.NoError(t, err)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := service.Create(ctx, "To Do")
		assert.ErrorIs(t, err, statuses.ErrNameTaken)
	})

	t.Run("duplicate name differs only in case", func(t *testing.T) {
		_, err := service.Create(ctx, "to do")
		assert.ErrorIs(t, err, statuses.ErrNameTaken)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		items, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Less(t, items[0].ID.String(), items[1].ID.String())
	})
}

func TestService_Rename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := statuses.NewService(db)
	ctx := testutil.TestContext(t)

	todo, err := service.Create(ctx, "To Do")
	require.NoError(t, err)
	done, err := service.Create(ctx, "Done")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		renamed, err := service.Rename(ctx, todo.ID, "Backlog")
		require.NoError(t, err)
		assert.Equal(t, "Backlog", renamed.Name)
	})

	t.Run("renaming to own name is allowed", func(t *testing.T) {
		_, err := service.Rename(ctx, done.ID, "Done")
		assert.NoError(t, err)
	})

	t.Run("name collision", func(t *testing.T) {
		_, err := service.Rename(ctx, done.ID, "Backlog")
		assert.ErrorIs(t, err, statuses.ErrNameTaken)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Rename(ctx, uuid.New(), "Whatever")
		assert.ErrorIs(t, err, statuses.ErrStatusNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := statuses.NewService(db)
	ctx := testutil.TestContext(t)
	user := testutil.CreateTestUser(t, db)

	used, err := service.Create(ctx, "In Use")
	require.NoError(t, err)
	unused, err := service.Create(ctx, "Unused")
	require.NoError(t, err)

	testutil.CreateTestTask(t, db, used.ID, user.ID, "Holds the status")

	t.Run("referenced status cannot be deleted", func(t *testing.T) {
		err := service.Delete(ctx, used.ID)
		assert.ErrorIs(t, err, statuses.ErrStatusInUse)
	})

	t.Run("unreferenced status deletes", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, unused.ID))

		_, err := service.Get(ctx, unused.ID)
		assert.ErrorIs(t, err, statuses.ErrStatusNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, statuses.ErrStatusNotFound)
	})
}

func TestService_DefaultStatusID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := statuses.NewService(db)
	ctx := testutil.TestContext(t)

	t.Run("empty set", func(t *testing.T) {
		_, err := service.DefaultStatusID(ctx)
		assert.ErrorIs(t, err, statuses.ErrNoStatuses)
	})

	t.Run("lowest id wins", func(t *testing.T) {
		a, err := service.Create(ctx, "Alpha")
		require.NoError(t, err)
		b, err := service.Create(ctx, "Beta")
		require.NoError(t, err)

		want := a.ID
		if b.ID.String() < a.ID.String() {
			want = b.ID
		}

		got, err := service.DefaultStatusID(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
