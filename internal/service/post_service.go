package service

import (
	"context"
	"slices"
	"strings"

	"snipshare/internal/models"
	"snipshare/internal/observability"
	"snipshare/internal/repository"
)

// CodeFileInput is one source file attached to a post at creation time.
type CodeFileInput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// CreatePostInput carries the caller-supplied fields of a new post.
type CreatePostInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	Tags        []string        `json:"tags"`
	IsDraft     bool            `json:"is_draft"`
	CodeFiles   []CodeFileInput `json:"code_files"`
}

// PostService manages post content: creation, edits, viewer-aware reads,
// view counting and cascade deletion.
type PostService struct {
	contentRepo repository.ContentRepository
	relRepo     repository.RelationshipRepository
	modRepo     repository.ModerationRepository
	userRepo    repository.UserRepository
	cascade     repository.CascadeRepository
}

// NewPostService returns a new PostService.
func NewPostService(
	contentRepo repository.ContentRepository,
	relRepo repository.RelationshipRepository,
	modRepo repository.ModerationRepository,
	userRepo repository.UserRepository,
	cascade repository.CascadeRepository,
) *PostService {
	return &PostService{
		contentRepo: contentRepo,
		relRepo:     relRepo,
		modRepo:     modRepo,
		userRepo:    userRepo,
		cascade:     cascade,
	}
}

// CreatePost creates a post with its code files in one write.
func (s *PostService) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("post title must not be empty")
	}
	ok, err := s.userRepo.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("User", authorID)
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Language:    in.Language,
		Tags:        in.Tags,
		IsDraft:     in.IsDraft,
		AuthorID:    authorID,
	}
	for _, f := range in.CodeFiles {
		if strings.TrimSpace(f.Filename) == "" {
			return nil, models.NewValidationError("code file name must not be empty")
		}
		post.CodeFiles = append(post.CodeFiles, models.CodeFile{
			Filename: f.Filename,
			Content:  f.Content,
			Language: f.Language,
		})
	}

	if err := s.contentRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies content edits. Only the author may edit a post;
// the view counter is owned by the server and left untouched.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID string, in CreatePostInput) (*models.Post, error) {
	post, err := s.contentRepo.GetByID(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, models.NewValidationError("only the author can edit a post")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("post title must not be empty")
	}

	post.Title = in.Title
	post.Description = in.Description
	post.Language = in.Language
	post.Tags = in.Tags
	post.IsDraft = in.IsDraft

	if err := s.contentRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post if it is visible to the viewer. Drafts
// and block-suppressed posts read as not found to everyone but the
// author; the author can always fetch their own post, including after a
// moderation takedown.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := s.contentRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == viewerID {
		return post, nil
	}

	if post.IsDraft {
		observability.VisibilityDrops.WithLabelValues("draft").Inc()
		return nil, models.NewNotFoundError("Post", postID)
	}

	if viewerID != "" {
		blockSet, err := s.relRepo.BlockedUserIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if slices.Contains(blockSet, post.AuthorID) {
			observability.VisibilityDrops.WithLabelValues("block").Inc()
			return nil, models.NewNotFoundError("Post", postID)
		}
	}

	removed, err := s.modRepo.TakedownPostIDs(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	if _, gone := removed[post.ID]; gone {
		observability.VisibilityDrops.WithLabelValues("takedown").Inc()
		return nil, models.NewNotFoundError("Post", postID)
	}

	return post, nil
}

// RecordView increments the post's view counter. The increment is
// atomic at the storage layer; concurrent views never lose updates.
func (s *PostService) RecordView(ctx context.Context, postID string) error {
	return s.contentRepo.IncrementViewCount(ctx, postID)
}

// DeletePost removes the post and everything referencing it (code
// files, likes, bookmarks, comments and post-scoped reports) in one
// atomic cascade.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	ok, err := s.contentRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post", postID)
	}
	return s.cascade.DeletePost(ctx, postID)
}
