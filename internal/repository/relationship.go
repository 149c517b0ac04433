package repository

import (
	"context"

	"snipshare/internal/models"
	"snipshare/internal/observability"
	"snipshare/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationshipRepository is the store for Follow and Block edges.
//
// Insert methods are atomic insert-if-absent: when the pair already
// exists they return a DUPLICATE_EDGE error and write nothing. Remove
// methods are idempotent; removing an absent edge is not an error.
type RelationshipRepository interface {
	InsertFollow(ctx context.Context, follow *models.Follow) error
	RemoveFollow(ctx context.Context, followerID, followingID string) error
	GetFollow(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	ListFollowers(ctx context.Context, userID string, cursor *pagination.Cursor, limit int) ([]models.Follow, error)
	ListFollowing(ctx context.Context, userID string, cursor *pagination.Cursor, limit int) ([]models.Follow, error)

	InsertBlock(ctx context.Context, block *models.Block) error
	RemoveBlock(ctx context.Context, blockerID, blockedID string) error
	GetBlock(ctx context.Context, blockerID, blockedID string) (*models.Block, error)
	ListBlocking(ctx context.Context, blockerID string) ([]models.Block, error)

	// BlockedUserIDs returns the symmetric block set for a user: everyone
	// the user blocked plus everyone who blocked the user. Loaded fresh
	// on every call; never cached.
	BlockedUserIDs(ctx context.Context, userID string) ([]string, error)
}

type relationshipRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewRelationshipRepository creates a new relationship repository.
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{
		db:     db,
		logger: observability.NewRepoLogger("follows"),
	}
}

func (r *relationshipRepository) InsertFollow(ctx context.Context, follow *models.Follow) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(follow)
	if res.Error != nil {
		err := classifyError(res.Error, "follow")
		r.logger.LogError(ctx, err, "insert")
		return err
	}
	if res.RowsAffected == 0 {
		return models.NewDuplicateEdgeError("follow")
	}
	r.logger.LogWrite(ctx, "insert", map[string]any{
		"follower_id": follow.FollowerID, "following_id": follow.FollowingID,
	})
	return nil
}

func (r *relationshipRepository) RemoveFollow(ctx context.Context, followerID, followingID string) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return classifyError(err, "follow")
	}
	return nil
}

func (r *relationshipRepository) GetFollow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		return nil, notFoundOr(err, "Follow", followerID+"->"+followingID)
	}
	return &follow, nil
}

func (r *relationshipRepository) ListFollowers(ctx context.Context, userID string, cursor *pagination.Cursor, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	q := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follows.following_id = ?", userID).
		Preload("Follower")
	err := pagination.Apply(q, "follows", cursor).Limit(limit).Find(&follows).Error
	if err != nil {
		return nil, classifyError(err, "follow")
	}
	return follows, nil
}

func (r *relationshipRepository) ListFollowing(ctx context.Context, userID string, cursor *pagination.Cursor, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	q := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follows.follower_id = ?", userID).
		Preload("Following")
	err := pagination.Apply(q, "follows", cursor).Limit(limit).Find(&follows).Error
	if err != nil {
		return nil, classifyError(err, "follow")
	}
	return follows, nil
}

func (r *relationshipRepository) InsertBlock(ctx context.Context, block *models.Block) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoNothing: true,
		}).
		Create(block)
	if res.Error != nil {
		err := classifyError(res.Error, "block")
		r.logger.LogError(ctx, err, "insert")
		return err
	}
	if res.RowsAffected == 0 {
		return models.NewDuplicateEdgeError("block")
	}
	r.logger.LogWrite(ctx, "insert", map[string]any{
		"blocker_id": block.BlockerID, "blocked_id": block.BlockedID,
	})
	return nil
}

func (r *relationshipRepository) RemoveBlock(ctx context.Context, blockerID, blockedID string) error {
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
	if err != nil {
		return classifyError(err, "block")
	}
	return nil
}

func (r *relationshipRepository) GetBlock(ctx context.Context, blockerID, blockedID string) (*models.Block, error) {
	var block models.Block
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&block).Error
	if err != nil {
		return nil, notFoundOr(err, "Block", blockerID+"->"+blockedID)
	}
	return &block, nil
}

func (r *relationshipRepository) ListBlocking(ctx context.Context, blockerID string) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Preload("Blocked").
		Order("created_at DESC").
		Find(&blocks).Error
	if err != nil {
		return nil, classifyError(err, "block")
	}
	return blocks, nil
}

func (r *relationshipRepository) BlockedUserIDs(ctx context.Context, userID string) ([]string, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&blocks).Error
	if err != nil {
		return nil, classifyError(err, "block")
	}

	seen := make(map[string]struct{}, len(blocks))
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		other := b.BlockedID
		if other == userID {
			other = b.BlockerID
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}
