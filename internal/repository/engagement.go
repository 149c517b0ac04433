package repository

import (
	"context"

	"snipshare/internal/cache"
	"snipshare/internal/models"
	"snipshare/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository is the store for Like, Bookmark and Comment edges.
// Like and Bookmark inserts are atomic insert-if-absent per (user, post)
// pair; comments carry no uniqueness constraint.
type EngagementRepository interface {
	InsertLike(ctx context.Context, like *models.Like) error
	RemoveLike(ctx context.Context, userID, postID string) error
	InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error
	RemoveBookmark(ctx context.Context, userID, postID string) error
	CreateComment(ctx context.Context, comment *models.Comment) error

	// LikedPostIDs is the bulk membership test used to decorate pages.
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
	ListComments(ctx context.Context, postID string, excludedAuthors []string, cursor *pagination.Cursor, limit int) ([]models.Comment, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) InsertLike(ctx context.Context, like *models.Like) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return classifyError(res.Error, "like")
	}
	if res.RowsAffected == 0 {
		return models.NewDuplicateEdgeError("like")
	}
	cache.InvalidatePost(ctx, like.PostID)
	return nil
}

func (r *engagementRepository) RemoveLike(ctx context.Context, userID, postID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return classifyError(err, "like")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *engagementRepository) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(bookmark)
	if res.Error != nil {
		return classifyError(res.Error, "bookmark")
	}
	if res.RowsAffected == 0 {
		return models.NewDuplicateEdgeError("bookmark")
	}
	return nil
}

func (r *engagementRepository) RemoveBookmark(ctx context.Context, userID, postID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Bookmark{}).Error
	if err != nil {
		return classifyError(err, "bookmark")
	}
	return nil
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return classifyError(err, "comment")
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *engagementRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, classifyError(err, "like")
	}
	return liked, nil
}

func (r *engagementRepository) ListComments(ctx context.Context, postID string, excludedAuthors []string, cursor *pagination.Cursor, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	q := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("comments.post_id = ?", postID).
		Preload("User")
	if len(excludedAuthors) > 0 {
		q = q.Where("comments.user_id NOT IN ?", excludedAuthors)
	}
	err := pagination.Apply(q, "comments", cursor).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, classifyError(err, "comment")
	}
	return comments, nil
}

func (r *engagementRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, classifyError(err, "like")
	}
	return count, nil
}
