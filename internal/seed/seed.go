package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"snipshare/internal/models"
	"snipshare/internal/repository"
	"snipshare/internal/service"
)

// Seeder populates a database with a social mesh described by a Profile.
// Users and posts are created through the Factory; every edge and report
// goes through the services, so duplicate picks collapse idempotently
// and self-referential picks are simply skipped.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand

	graph      *service.GraphService
	engagement *service.EngagementService
	moderation *service.ModerationService
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	userRepo := repository.NewUserRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	engRepo := repository.NewEngagementRepository(db)
	modRepo := repository.NewModerationRepository(db)
	contentRepo := repository.NewContentRepository(db)

	return &Seeder{
		db:         db,
		factory:    NewFactory(db),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		graph:      service.NewGraphService(relRepo, userRepo),
		engagement: service.NewEngagementService(engRepo, userRepo, contentRepo),
		moderation: service.NewModerationService(modRepo, userRepo, contentRepo),
	}
}

// ClearAll deletes every seeded row. Edge tables go first so no step
// ever orphans a reference.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Like{}, &models.Bookmark{}, &models.Comment{},
		&models.Report{}, &models.Follow{}, &models.Block{},
		&models.CodeFile{}, &models.Post{}, &models.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run builds the mesh: users, posts with drafts, follows, blocks,
// engagement and a slice of reports with some resolved as takedowns.
func (s *Seeder) Run(ctx context.Context, profile Profile) error {
	slog.Info("seeding database", "users", profile.Users, "posts_per_user", profile.PostsPerUser)

	if profile.Clean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, profile.Users)
	for i := 0; i < profile.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, profile.Users*profile.PostsPerUser)
	for _, user := range users {
		for i := 0; i < profile.PostsPerUser; i++ {
			draft := s.rng.Float64() < profile.DraftRatio
			post, err := s.factory.CreatePost(user, func(p *models.Post) {
				p.IsDraft = draft
			})
			if err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}
			if !post.IsDraft {
				posts = append(posts, post)
			}
		}
	}

	if err := s.seedFollows(ctx, users, profile.FollowsPerUser); err != nil {
		return err
	}
	if err := s.seedBlocks(ctx, users, profile.Blocks); err != nil {
		return err
	}
	if err := s.seedEngagement(ctx, users, posts, profile); err != nil {
		return err
	}
	if err := s.seedReports(ctx, users, posts, profile); err != nil {
		return err
	}

	slog.Info("seeding complete", "users", len(users), "published_posts", len(posts))
	return nil
}

func (s *Seeder) seedFollows(ctx context.Context, users []*models.User, perUser int) error {
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			target := users[s.rng.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			if _, err := s.graph.Follow(ctx, user.ID, target.ID); err != nil {
				return fmt.Errorf("seed follows: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedBlocks(ctx context.Context, users []*models.User, count int) error {
	for i := 0; i < count; i++ {
		blocker := users[s.rng.Intn(len(users))]
		blocked := users[s.rng.Intn(len(users))]
		if blocker.ID == blocked.ID {
			continue
		}
		if _, err := s.graph.Block(ctx, blocker.ID, blocked.ID); err != nil {
			return fmt.Errorf("seed blocks: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedEngagement(ctx context.Context, users []*models.User, posts []*models.Post, profile Profile) error {
	if len(posts) == 0 {
		return nil
	}
	for _, user := range users {
		for i := 0; i < profile.LikesPerUser; i++ {
			post := posts[s.rng.Intn(len(posts))]
			if err := s.engagement.Like(ctx, user.ID, post.ID); err != nil {
				return fmt.Errorf("seed likes: %w", err)
			}
			if s.rng.Float64() < 0.3 {
				if err := s.engagement.Bookmark(ctx, user.ID, post.ID); err != nil {
					return fmt.Errorf("seed bookmarks: %w", err)
				}
			}
		}
		for i := 0; i < profile.CommentsPerUser; i++ {
			post := posts[s.rng.Intn(len(posts))]
			if _, err := s.engagement.Comment(ctx, user.ID, post.ID, commentText(s.rng)); err != nil {
				return fmt.Errorf("seed comments: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedReports(ctx context.Context, users []*models.User, posts []*models.Post, profile Profile) error {
	if len(posts) == 0 {
		return nil
	}
	for i := 0; i < profile.Reports; i++ {
		post := posts[s.rng.Intn(len(posts))]
		reporter := users[s.rng.Intn(len(users))]
		if reporter.ID == post.AuthorID {
			continue
		}

		report, err := s.moderation.FileReport(ctx, reporter.ID, post.AuthorID, &post.ID, reportReason(s.rng))
		if err != nil {
			return fmt.Errorf("seed reports: %w", err)
		}
		if s.rng.Float64() < profile.TakedownRatio {
			if err := s.moderation.ResolveReport(ctx, report.ID, true); err != nil {
				return fmt.Errorf("seed takedowns: %w", err)
			}
		}
	}
	return nil
}

var commentTexts = []string{
	"Nice approach, saves a goroutine.",
	"Have you benchmarked this against the stdlib version?",
	"This breaks on empty input, check the bounds.",
	"Bookmarking this, exactly what I needed.",
	"Consider returning an error instead of panicking here.",
	"Clean. The table-driven test sold me.",
}

func commentText(rng *rand.Rand) string {
	return commentTexts[rng.Intn(len(commentTexts))]
}

var reportReasons = []string{
	"plagiarized snippet without attribution",
	"spam link in description",
	"malicious code disguised as a utility",
	"harassment in post description",
}

func reportReason(rng *rand.Rand) string {
	return reportReasons[rng.Intn(len(reportReasons))]
}
