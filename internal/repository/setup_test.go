package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"snipshare/internal/database"
	"snipshare/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{Name: name}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    title,
		AuthorID: authorID,
		Language: "go",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// createTestPostAt backdates a post so ordering tests get distinct
// timestamps regardless of clock resolution.
func createTestPostAt(t *testing.T, db *gorm.DB, authorID, title string, at time.Time) *models.Post {
	t.Helper()

	post := createTestPost(t, db, authorID, title)
	require.NoError(t, db.Model(post).Update("created_at", at).Error)
	post.CreatedAt = at
	return post
}
