package repository

import (
	"context"

	"snipshare/internal/models"
	"snipshare/internal/pagination"

	"gorm.io/gorm"
)

// ListPostsOptions selects and filters a page of post candidates.
// ExcludedAuthors carries the viewer's symmetric block set; ViewerID
// controls the draft predicate and the liked/bookmarked decorations.
type ListPostsOptions struct {
	AuthorID        string
	ViewerID        string
	ExcludedAuthors []string
	Cursor          *pagination.Cursor
	Limit           int
}

// ContentRepository is the store for posts and their code files. It owns
// the scalar content fields and the view counter.
type ContentRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, error)

	// IncrementViewCount applies the atomic, commutative counter update.
	// No read-modify-write; relaxed ordering is fine for view counts.
	IncrementViewCount(ctx context.Context, postID string) error

	Exists(ctx context.Context, id string) (bool, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, post *models.Post) error {
	// Post and its code files are inserted in one transaction by gorm's
	// association handling.
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return classifyError(err, "post")
	}
	return nil
}

// applyPostDetails adds subqueries to fetch counts and viewer edges in a single query.
func (r *contentRepository) applyPostDetails(db *gorm.DB, viewerID string) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
		"(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id) as bookmarks_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count"

	if viewerID != "" {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked"+
			", EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.post_id = posts.id AND bookmarks.user_id = ?) as bookmarked",
			viewerID, viewerID)
	}

	return db.Select(selectQuery + ", 0 as liked, 0 as bookmarked")
}

func (r *contentRepository) GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx).Model(&models.Post{}), viewerID).
		Preload("Author").
		Preload("CodeFiles").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Post", id)
	}
	return &post, nil
}

func (r *contentRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return classifyError(err, "post")
	}
	return nil
}

func (r *contentRepository) List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, error) {
	var posts []*models.Post

	q := r.applyPostDetails(r.db.WithContext(ctx).Model(&models.Post{}), opts.ViewerID).
		Preload("Author").
		Preload("CodeFiles")

	if opts.AuthorID != "" {
		q = q.Where("posts.author_id = ?", opts.AuthorID)
	}
	if len(opts.ExcludedAuthors) > 0 {
		q = q.Where("posts.author_id NOT IN ?", opts.ExcludedAuthors)
	}
	// Drafts are visible to their author only.
	if opts.ViewerID != "" {
		q = q.Where("posts.is_draft = ? OR posts.author_id = ?", false, opts.ViewerID)
	} else {
		q = q.Where("posts.is_draft = ?", false)
	}

	err := pagination.Apply(q, "posts", opts.Cursor).Limit(opts.Limit).Find(&posts).Error
	if err != nil {
		return nil, classifyError(err, "post")
	}
	return posts, nil
}

func (r *contentRepository) IncrementViewCount(ctx context.Context, postID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return classifyError(res.Error, "post")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

func (r *contentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, classifyError(err, "post")
	}
	return count > 0, nil
}
