package users_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/testutil"
	"github.com/sulthanallaudeen/priya-task/internal/users"
)

func TestService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := users.NewService(db)
	ctx := testutil.TestContext(t)

	alice := testutil.CreateTestUser(t, db)
	require.NoError(t, db.Model(alice).Updates(map[string]interface{}{
		"full_name": "Alice Carter",
		"email":     "alice@example.com",
	}).Error)
	bob := testutil.CreateTestUser(t, db)
	require.NoError(t, db.Model(bob).Updates(map[string]interface{}{
		"full_name": "Bob Diaz",
		"email":     "bob@example.com",
	}).Error)

	status := testutil.CreateTestStatus(t, db, "To Do")
	testutil.CreateTestTask(t, db, status.ID, alice.ID, "One")
	testutil.CreateTestTask(t, db, status.ID, alice.ID, "Two")

	t.Run("annotates assigned task counts", func(t *testing.T) {
		result, err := service.List(ctx, users.ListInput{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)

		counts := map[string]int64{}
		for _, item := range result.Users {
			counts[item.Email] = item.TaskCount
		}
		assert.EqualValues(t, 2, counts["alice@example.com"])
		assert.EqualValues(t, 0, counts["bob@example.com"])
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		result, err := service.List(ctx, users.ListInput{Search: "carter"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Users, 1)
		assert.Equal(t, "alice@example.com", result.Users[0].Email)
	})

	t.Run("search matches email", func(t *testing.T) {
		result, err := service.List(ctx, users.ListInput{Search: "BOB@"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
	})

	t.Run("pagination clamps limit", func(t *testing.T) {
		result, err := service.List(ctx, users.ListInput{Limit: 900})
		require.NoError(t, err)
		assert.Equal(t, 50, result.Limit)
	})
}

func TestService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := users.NewService(db)
	ctx := testutil.TestContext(t)

	roleAdmin := models.RoleAdmin
	roleUser := models.RoleUser
	active := true
	inactive := false

	t.Run("promote and demote", func(t *testing.T) {
		testutil.CreateTestAdmin(t, db)
		target := testutil.CreateTestUser(t, db)

		updated, err := service.Update(ctx, target.ID, users.UpdateInput{Role: &roleAdmin})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)

		updated, err = service.Update(ctx, target.ID, users.UpdateInput{Role: &roleUser})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, updated.Role)
	})

	t.Run("empty patch", func(t *testing.T) {
		target := testutil.CreateTestUser(t, db)
		_, err := service.Update(ctx, target.ID, users.UpdateInput{})
		assert.ErrorIs(t, err, users.ErrNoFields)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Update(ctx, uuid.New(), users.UpdateInput{IsActive: &active})
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("last active admin cannot be demoted", func(t *testing.T) {
		freshDB := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, freshDB)
		freshService := users.NewService(freshDB)

		only := testutil.CreateTestAdmin(t, freshDB)

		_, err := freshService.Update(ctx, only.ID, users.UpdateInput{Role: &roleUser})
		assert.ErrorIs(t, err, users.ErrLastAdmin)

		_, err = freshService.Update(ctx, only.ID, users.UpdateInput{IsActive: &inactive})
		assert.ErrorIs(t, err, users.ErrLastAdmin)
	})

	t.Run("demotion allowed with a second active admin", func(t *testing.T) {
		freshDB := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, freshDB)
		freshService := users.NewService(freshDB)

		first := testutil.CreateTestAdmin(t, freshDB)
		testutil.CreateTestAdmin(t, freshDB)

		updated, err := freshService.Update(ctx, first.ID, users.UpdateInput{Role: &roleUser})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, updated.Role)
	})

	t.Run("guard ignores inactive admins", func(t *testing.T) {
		freshDB := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, freshDB)
		freshService := users.NewService(freshDB)

		only := testutil.CreateTestAdmin(t, freshDB)
		dormant := testutil.CreateTestAdmin(t, freshDB)
		require.NoError(t, freshDB.Model(dormant).Update("is_active", false).Error)

		_, err := freshService.Update(ctx, only.ID, users.UpdateInput{Role: &roleUser})
		assert.ErrorIs(t, err, users.ErrLastAdmin)
	})

	t.Run("deactivating an inactive admin is not guarded", func(t *testing.T) {
		freshDB := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, freshDB)
		freshService := users.NewService(freshDB)

		testutil.CreateTestAdmin(t, freshDB)
		dormant := testutil.CreateTestAdmin(t, freshDB)
		require.NoError(t, freshDB.Model(dormant).Update("is_active", false).Error)

		_, err := freshService.Update(ctx, dormant.ID, users.UpdateInput{Role: &roleUser})
		assert.NoError(t, err)
	})
}
