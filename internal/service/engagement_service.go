package service

import (
	"context"
	"strings"

	"snipshare/internal/models"
	"snipshare/internal/observability"
	"snipshare/internal/repository"
)

// EngagementService manages likes, bookmarks and comments on posts.
type EngagementService struct {
	engRepo     repository.EngagementRepository
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(engRepo repository.EngagementRepository, userRepo repository.UserRepository, contentRepo repository.ContentRepository) *EngagementService {
	return &EngagementService{
		engRepo:     engRepo,
		userRepo:    userRepo,
		contentRepo: contentRepo,
	}
}

// Like records a like. Liking an already-liked post is an idempotent
// no-op; at most one like row exists per (user, post) pair even under
// concurrent identical requests.
func (s *EngagementService) Like(ctx context.Context, userID, postID string) error {
	if err := s.requireUserAndPost(ctx, userID, postID); err != nil {
		return err
	}

	err := s.engRepo.InsertLike(ctx, &models.Like{UserID: userID, PostID: postID})
	if models.IsDuplicateEdge(err) {
		observability.EdgeWrites.WithLabelValues("like", observability.OutcomeDuplicate).Inc()
		return nil
	}
	if err != nil {
		return err
	}
	observability.EdgeWrites.WithLabelValues("like", observability.OutcomeCreated).Inc()
	return nil
}

// Unlike removes a like; removing an absent like succeeds.
func (s *EngagementService) Unlike(ctx context.Context, userID, postID string) error {
	return s.engRepo.RemoveLike(ctx, userID, postID)
}

// Bookmark saves a post for the user, idempotently.
func (s *EngagementService) Bookmark(ctx context.Context, userID, postID string) error {
	if err := s.requireUserAndPost(ctx, userID, postID); err != nil {
		return err
	}

	err := s.engRepo.InsertBookmark(ctx, &models.Bookmark{UserID: userID, PostID: postID})
	if models.IsDuplicateEdge(err) {
		observability.EdgeWrites.WithLabelValues("bookmark", observability.OutcomeDuplicate).Inc()
		return nil
	}
	if err != nil {
		return err
	}
	observability.EdgeWrites.WithLabelValues("bookmark", observability.OutcomeCreated).Inc()
	return nil
}

// Unbookmark removes a bookmark; removing an absent bookmark succeeds.
func (s *EngagementService) Unbookmark(ctx context.Context, userID, postID string) error {
	return s.engRepo.RemoveBookmark(ctx, userID, postID)
}

// Comment adds a comment to a post. Comments carry no uniqueness
// constraint; only referential existence is validated.
func (s *EngagementService) Comment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("comment content must not be empty")
	}
	if err := s.requireUserAndPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, PostID: postID, Content: content}
	if err := s.engRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *EngagementService) requireUserAndPost(ctx context.Context, userID, postID string) error {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User", userID)
	}
	ok, err = s.contentRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
