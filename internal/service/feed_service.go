package service

import (
	"context"
	"slices"

	"snipshare/internal/models"
	"snipshare/internal/observability"
	"snipshare/internal/pagination"
	"snipshare/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedService is the read side of the engine: it resolves, for a given
// viewer, which content is visible once blocks, drafts and moderation
// state are taken into account.
//
// Visibility is computed from the graph's current state on every call.
// Nothing here is cached: a block or unblock must be reflected by the
// very next query.
type FeedService struct {
	contentRepo repository.ContentRepository
	relRepo     repository.RelationshipRepository
	modRepo     repository.ModerationRepository
	engRepo     repository.EngagementRepository
	userRepo    repository.UserRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	contentRepo repository.ContentRepository,
	relRepo repository.RelationshipRepository,
	modRepo repository.ModerationRepository,
	engRepo repository.EngagementRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		contentRepo: contentRepo,
		relRepo:     relRepo,
		modRepo:     modRepo,
		engRepo:     engRepo,
		userRepo:    userRepo,
	}
}

// PostPage is one page of visible posts plus the continuation cursor.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// CommentPage is one page of visible comments plus the continuation cursor.
type CommentPage struct {
	Comments   []models.Comment `json:"comments"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// GetFeed returns the global feed page visible to the viewer.
func (s *FeedService) GetFeed(ctx context.Context, viewerID, cursorToken string, pageSize int) (*PostPage, error) {
	return s.resolvePosts(ctx, "", viewerID, cursorToken, pageSize)
}

// GetUserPosts returns the page of authorID's posts visible to viewerID.
// A block in either direction between author and viewer yields an empty
// page, never an error.
func (s *FeedService) GetUserPosts(ctx context.Context, authorID, viewerID, cursorToken string, pageSize int) (*PostPage, error) {
	if authorID == "" {
		return nil, models.NewValidationError("author id is required")
	}
	return s.resolvePosts(ctx, authorID, viewerID, cursorToken, pageSize)
}

// resolvePosts implements the visibility pipeline: candidate fetch in
// (created_at DESC, id DESC) order, block-set and draft predicates in the
// store query, takedown suppression via bulk membership, and a fill loop
// so dropped candidates do not shorten the page. The next-cursor is
// always derived from the last returned row, which keeps repeated
// cursor walks free of repeats and skips on a fixed snapshot.
func (s *FeedService) resolvePosts(ctx context.Context, authorID, viewerID, cursorToken string, pageSize int) (*PostPage, error) {
	span, ctx := observability.NewSpan(ctx, "visibility.resolve_posts")
	defer span.End()
	span.AddAttributes(
		attribute.String("viewer_id", viewerID),
		attribute.String("author_id", authorID),
	)

	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	pageSize = pagination.ClampPageSize(pageSize)

	blockSet, err := s.viewerBlockSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// A block in either direction hides the author's page entirely.
	// A self-query never applies block filtering against oneself.
	if authorID != "" && authorID != viewerID && slices.Contains(blockSet, authorID) {
		observability.VisibilityDrops.WithLabelValues("block").Inc()
		return &PostPage{}, nil
	}

	visible := make([]*models.Post, 0, pageSize+1)
	fetchSize := pageSize + 1

	for len(visible) <= pageSize {
		candidates, err := s.contentRepo.List(ctx, repository.ListPostsOptions{
			AuthorID:        authorID,
			ViewerID:        viewerID,
			ExcludedAuthors: blockSet,
			Cursor:          cursor,
			Limit:           fetchSize,
		})
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		if len(candidates) == 0 {
			break
		}

		kept, err := s.dropTakedowns(ctx, candidates)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		visible = append(visible, kept...)

		if len(candidates) < fetchSize {
			break
		}
		last := candidates[len(candidates)-1]
		cursor = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	page := &PostPage{}
	if len(visible) > pageSize {
		visible = visible[:pageSize]
		last := visible[pageSize-1]
		page.NextCursor = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	page.Posts = visible
	return page, nil
}

// GetPostComments returns the page of comments on a post visible to the
// viewer. Comments by block-linked authors are filtered; if the post
// itself is invisible to the viewer the page is empty.
func (s *FeedService) GetPostComments(ctx context.Context, postID, viewerID, cursorToken string, pageSize int) (*CommentPage, error) {
	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	pageSize = pagination.ClampPageSize(pageSize)

	post, err := s.contentRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if post.IsDraft && post.AuthorID != viewerID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	blockSet, err := s.viewerBlockSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewerID && slices.Contains(blockSet, post.AuthorID) {
		observability.VisibilityDrops.WithLabelValues("block").Inc()
		return &CommentPage{}, nil
	}

	if post.AuthorID != viewerID {
		removed, err := s.modRepo.TakedownPostIDs(ctx, []string{post.ID})
		if err != nil {
			return nil, err
		}
		if _, gone := removed[post.ID]; gone {
			observability.VisibilityDrops.WithLabelValues("takedown").Inc()
			return &CommentPage{}, nil
		}
	}

	comments, err := s.engRepo.ListComments(ctx, postID, blockSet, cursor, pageSize)
	if err != nil {
		return nil, err
	}

	page := &CommentPage{Comments: comments}
	if n := len(comments); n > 0 {
		last := comments[n-1]
		page.NextCursor = pagination.Next(last.CreatedAt, last.ID, n, pageSize)
	}
	return page, nil
}

// viewerBlockSet loads the symmetric block union for the viewer: users
// the viewer blocked and users who blocked the viewer.
func (s *FeedService) viewerBlockSet(ctx context.Context, viewerID string) ([]string, error) {
	if viewerID == "" {
		return nil, nil
	}
	return s.relRepo.BlockedUserIDs(ctx, viewerID)
}

// dropTakedowns removes candidates with a resolved content-removed
// report. Open and dismissed reports never affect visibility.
func (s *FeedService) dropTakedowns(ctx context.Context, candidates []*models.Post) ([]*models.Post, error) {
	ids := make([]string, len(candidates))
	for i, p := range candidates {
		ids[i] = p.ID
	}
	removed, err := s.modRepo.TakedownPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return candidates, nil
	}

	kept := candidates[:0]
	for _, p := range candidates {
		if _, gone := removed[p.ID]; gone {
			observability.VisibilityDrops.WithLabelValues("takedown").Inc()
			continue
		}
		kept = append(kept, p)
	}
	return kept, nil
}
