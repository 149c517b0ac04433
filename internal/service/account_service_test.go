package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipshare/internal/models"
)

func TestCreateUser(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	email := "alice@example.com"
	user, err := env.accounts.CreateUser(ctx, CreateUserInput{Name: "alice", Email: &email})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	got, err := env.accounts.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	_, err = env.accounts.CreateUser(ctx, CreateUserInput{Name: "  "})
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestUpdateUser(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "alice")

	updated, err := env.accounts.UpdateUser(ctx, alice.ID, CreateUserInput{Name: "alice", Bio: "gopher"})
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)

	_, err = env.accounts.UpdateUser(ctx, "no-such-user", CreateUserInput{Name: "x"})
	assert.True(t, models.IsNotFound(err))
}

func TestDeleteUser_CascadesEverywhere(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	victim := env.user(t, "victim")
	other := env.user(t, "other")

	post := env.post(t, victim.ID, "doomed")
	require.NoError(t, env.engagement.Like(ctx, other.ID, post.ID))
	_, err := env.graph.Follow(ctx, other.ID, victim.ID)
	require.NoError(t, err)
	_, err = env.graph.Block(ctx, victim.ID, other.ID)
	require.NoError(t, err)
	_, err = env.moderation.FileReport(ctx, other.ID, victim.ID, &post.ID, "spam")
	require.NoError(t, err)

	require.NoError(t, env.accounts.DeleteUser(ctx, victim.ID))

	for _, m := range []any{&models.Post{}, &models.Like{}, &models.Follow{}, &models.Block{}, &models.Report{}} {
		var count int64
		require.NoError(t, env.db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T rows remain after cascade", m)
	}

	// the unrelated account survives
	_, err = env.accounts.GetUser(ctx, other.ID)
	require.NoError(t, err)

	err = env.accounts.DeleteUser(ctx, victim.ID)
	assert.True(t, models.IsNotFound(err))
}
