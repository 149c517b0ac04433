package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"snipshare/internal/database"
	"snipshare/internal/models"
	"snipshare/internal/repository"
)

// testEnv wires every service over a shared in-memory store, the same
// way the process wires them at startup.
type testEnv struct {
	db         *gorm.DB
	accounts   *AccountService
	graph      *GraphService
	posts      *PostService
	engagement *EngagementService
	moderation *ModerationService
	feed       *FeedService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	userRepo := repository.NewUserRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	engRepo := repository.NewEngagementRepository(db)
	modRepo := repository.NewModerationRepository(db)
	contentRepo := repository.NewContentRepository(db)
	cascade := repository.NewCascadeRepository(db)

	return &testEnv{
		db:         db,
		accounts:   NewAccountService(userRepo, cascade),
		graph:      NewGraphService(relRepo, userRepo),
		posts:      NewPostService(contentRepo, relRepo, modRepo, userRepo, cascade),
		engagement: NewEngagementService(engRepo, userRepo, contentRepo),
		moderation: NewModerationService(modRepo, userRepo, contentRepo),
		feed:       NewFeedService(contentRepo, relRepo, modRepo, engRepo, userRepo),
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()

	u := &models.User{Name: name}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) post(t *testing.T, authorID, title string) *models.Post {
	t.Helper()

	p := &models.Post{Title: title, AuthorID: authorID}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) postAt(t *testing.T, authorID, title string, at time.Time) *models.Post {
	t.Helper()

	p := e.post(t, authorID, title)
	require.NoError(t, e.db.Model(p).Update("created_at", at).Error)
	p.CreatedAt = at
	return p
}

func (e *testEnv) titles(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}
