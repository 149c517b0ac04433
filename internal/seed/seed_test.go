package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"snipshare/internal/database"
	"snipshare/internal/models"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func TestSeeder_MeshHonorsGraphInvariants(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	profile := Profile{
		Users:           10,
		PostsPerUser:    3,
		DraftRatio:      0.2,
		FollowsPerUser:  4,
		Blocks:          4,
		LikesPerUser:    5,
		CommentsPerUser: 3,
		Reports:         5,
		TakedownRatio:   0.5,
	}
	require.NoError(t, seeder.Run(context.Background(), profile))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(10), userCount)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(30), postCount)

	// no self-referential edges survive seeding
	var selfEdges int64
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = following_id").Count(&selfEdges).Error)
	assert.Zero(t, selfEdges)
	require.NoError(t, db.Model(&models.Block{}).Where("blocker_id = blocked_id").Count(&selfEdges).Error)
	assert.Zero(t, selfEdges)
	require.NoError(t, db.Model(&models.Report{}).Where("reporter_id = reported_id").Count(&selfEdges).Error)
	assert.Zero(t, selfEdges)

	// pair uniqueness held even under random duplicate picks
	var dupPairs int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM (SELECT follower_id, following_id FROM follows GROUP BY follower_id, following_id HAVING COUNT(*) > 1)",
	).Scan(&dupPairs).Error)
	assert.Zero(t, dupPairs)

	// every takedown is a resolved content-removed post report
	var badTakedowns int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("reason_class = ? AND (status != ? OR post_id IS NULL)", models.ReasonClassContentRemoved, models.ReportStatusResolved).
		Count(&badTakedowns).Error)
	assert.Zero(t, badTakedowns)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(context.Background(), Profile{
		Users:          4,
		PostsPerUser:   2,
		FollowsPerUser: 2,
	}))
	require.NoError(t, seeder.ClearAll())

	for _, m := range database.AllModels() {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T rows remain after clear", m)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: 12\nposts_per_user: 5\ntakedown_ratio: 0.1\n"), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, profile.Users)
	assert.Equal(t, 5, profile.PostsPerUser)
	assert.InDelta(t, 0.1, profile.TakedownRatio, 1e-9)

	// unset fields keep the defaults
	assert.Equal(t, DefaultProfile().LikesPerUser, profile.LikesPerUser)
}

func TestLoadProfile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: 1\n"), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 users")
}

func TestFactory_CreatePost(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	post, err := factory.CreatePost(user)
	require.NoError(t, err)
	assert.NotEmpty(t, post.CodeFiles)
	assert.NotEmpty(t, post.Tags)
	assert.Contains(t, languages, post.Language)
	for _, f := range post.CodeFiles {
		assert.NotEmpty(t, f.Filename)
		assert.NotEmpty(t, f.Content, fmt.Sprintf("empty content for %s", f.Filename))
	}
}
