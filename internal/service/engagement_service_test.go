package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipshare/internal/models"
)

func TestLike_DuplicateIsIdempotentSuccess(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "snippet")

	require.NoError(t, env.engagement.Like(ctx, alice.ID, post.ID))
	require.NoError(t, env.engagement.Like(ctx, alice.ID, post.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLike_MissingPost(t *testing.T) {
	env := setupTestEnv(t)

	alice := env.user(t, "alice")

	err := env.engagement.Like(context.Background(), alice.ID, "no-such-post")
	assert.True(t, models.IsNotFound(err))
}

func TestBookmark_IndependentOfLike(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "snippet")

	require.NoError(t, env.engagement.Like(ctx, alice.ID, post.ID))
	require.NoError(t, env.engagement.Bookmark(ctx, alice.ID, post.ID))

	require.NoError(t, env.engagement.Unlike(ctx, alice.ID, post.ID))

	// the bookmark survives removing the like
	var count int64
	require.NoError(t, env.db.Model(&models.Bookmark{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnlike_AbsentEdgeSucceeds(t *testing.T) {
	env := setupTestEnv(t)

	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "snippet")

	assert.NoError(t, env.engagement.Unlike(context.Background(), alice.ID, post.ID))
	assert.NoError(t, env.engagement.Unbookmark(context.Background(), alice.ID, post.ID))
}

func TestComment_EmptyContentRejected(t *testing.T) {
	env := setupTestEnv(t)

	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "snippet")

	_, err := env.engagement.Comment(context.Background(), alice.ID, post.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestComment_MultiplePerUserAllowed(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "snippet")

	_, err := env.engagement.Comment(ctx, alice.ID, post.ID, "first")
	require.NoError(t, err)
	_, err = env.engagement.Comment(ctx, alice.ID, post.ID, "second")
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
