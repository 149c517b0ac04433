package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipshare/internal/models"
	"snipshare/internal/pagination"
)

func TestCreatePost_WithCodeFiles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")

	post := &models.Post{
		Title:    "LRU cache",
		AuthorID: author.ID,
		Tags:     []string{"go", "cache"},
		CodeFiles: []models.CodeFile{
			{Filename: "lru.go", Content: "package lru", Language: "go"},
			{Filename: "lru_test.go", Content: "package lru", Language: "go"},
		},
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotEmpty(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Len(t, got.CodeFiles, 2)
	assert.Equal(t, []string{"go", "cache"}, got.Tags)
	assert.Equal(t, "alice", got.Author.Name)
}

func TestGetByID_ComputedCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	engRepo := NewEngagementRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	post := createTestPost(t, db, author.ID, "Worker pools")

	require.NoError(t, engRepo.InsertLike(ctx, &models.Like{UserID: fan.ID, PostID: post.ID}))
	require.NoError(t, engRepo.InsertBookmark(ctx, &models.Bookmark{UserID: fan.ID, PostID: post.ID}))
	require.NoError(t, engRepo.CreateComment(ctx, &models.Comment{UserID: fan.ID, PostID: post.ID, Content: "neat"}))

	got, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.BookmarksCount)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.True(t, got.Liked)
	assert.True(t, got.Bookmarked)

	// a different viewer sees the counts but not the personal flags
	other, err := repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.LikesCount)
	assert.False(t, other.Liked)
}

func TestListPosts_DraftVisibleToAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	createTestPost(t, db, author.ID, "published")
	draft := &models.Post{Title: "wip", AuthorID: author.ID, IsDraft: true}
	require.NoError(t, db.Create(draft).Error)

	own, err := repo.List(ctx, ListPostsOptions{AuthorID: author.ID, ViewerID: author.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	public, err := repo.List(ctx, ListPostsOptions{AuthorID: author.ID, ViewerID: "", Limit: 10})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "published", public[0].Title)
}

func TestListPosts_ExcludedAuthors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestPost(t, db, alice.ID, "from alice")
	createTestPost(t, db, bob.ID, "from bob")

	posts, err := repo.List(ctx, ListPostsOptions{ExcludedAuthors: []string{bob.ID}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from alice", posts[0].Title)
}

func TestListPosts_CursorStability(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	var titles []string
	for i := 0; i < 5; i++ {
		title := string(rune('a' + i))
		createTestPostAt(t, db, author.ID, title, base.Add(time.Duration(i)*time.Hour))
		titles = append(titles, title)
	}

	page1, err := repo.List(ctx, ListPostsOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, titles[4], page1[0].Title)
	assert.Equal(t, titles[3], page1[1].Title)

	// a post created after page 1 must not shift page 2
	createTestPostAt(t, db, author.ID, "newcomer", base.Add(10*time.Hour))

	last := page1[1]
	cursor := &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	page2, err := repo.List(ctx, ListPostsOptions{Cursor: cursor, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, titles[2], page2[0].Title)
	assert.Equal(t, titles[1], page2[1].Title)
}

func TestIncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	post := createTestPost(t, db, author.ID, "counted")

	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))

	got, err := repo.GetByID(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestIncrementViewCount_MissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)

	err := repo.IncrementViewCount(context.Background(), "no-such-post")
	assert.True(t, models.IsNotFound(err))
}
