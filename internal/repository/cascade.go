package repository

import (
	"context"

	"snipshare/internal/cache"
	"snipshare/internal/models"
	"snipshare/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// CascadeRepository executes multi-store deletions as single atomic
// transactions. A failed step rolls the whole cascade back; a partial
// cascade is a correctness bug, never a recoverable state.
type CascadeRepository interface {
	DeleteUser(ctx context.Context, userID string) error
	DeletePost(ctx context.Context, postID string) error
}

type cascadeRepository struct {
	db *gorm.DB
}

// NewCascadeRepository creates a new cascade repository.
func NewCascadeRepository(db *gorm.DB) CascadeRepository {
	return &cascadeRepository{db: db}
}

func (r *cascadeRepository) DeleteUser(ctx context.Context, userID string) error {
	span, ctx := observability.NewSpan(ctx, "cascade.delete_user")
	defer span.End()
	span.AddAttributes(attribute.String("user_id", userID))
	defer observability.TrackQuery("cascade", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", userID)

		// Edges referencing the user's posts (from any user) go first.
		for _, m := range []any{&models.Like{}, &models.Bookmark{}, &models.Comment{}, &models.Report{}} {
			if err := tx.Where("post_id IN (?)", ownPosts).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.CodeFile{}).Error; err != nil {
			return err
		}

		// Edges where the user appears in any participant role.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blocker_id = ? OR blocked_id = ?", userID, userID).Delete(&models.Block{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter_id = ? OR reported_id = ?", userID, userID).Delete(&models.Report{}).Error; err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		wrapped := models.NewCascadeFailureError(err)
		span.SetError(wrapped)
		return wrapped
	}

	cache.InvalidateUser(ctx, userID)
	observability.CascadeDeletes.WithLabelValues("user").Inc()
	return nil
}

func (r *cascadeRepository) DeletePost(ctx context.Context, postID string) error {
	span, ctx := observability.NewSpan(ctx, "cascade.delete_post")
	defer span.End()
	span.AddAttributes(attribute.String("post_id", postID))
	defer observability.TrackQuery("cascade", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Like{}, &models.Bookmark{}, &models.Comment{}, &models.Report{}, &models.CodeFile{}} {
			if err := tx.Where("post_id = ?", postID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
	if err != nil {
		wrapped := models.NewCascadeFailureError(err)
		span.SetError(wrapped)
		return wrapped
	}

	cache.InvalidatePost(ctx, postID)
	observability.CascadeDeletes.WithLabelValues("post").Inc()
	return nil
}
