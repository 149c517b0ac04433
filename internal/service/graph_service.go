// Package service implements the engine's entry points. Services are the
// only components that originate writes: every mutation is validated
// against the graph invariants here before it reaches a store, and the
// stores close the remaining race with atomic insert-if-absent inserts.
package service

import (
	"context"

	"snipshare/internal/models"
	"snipshare/internal/observability"
	"snipshare/internal/pagination"
	"snipshare/internal/repository"
)

// GraphService manages the Follow and Block edges of the social graph.
type GraphService struct {
	relRepo  repository.RelationshipRepository
	userRepo repository.UserRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(relRepo repository.RelationshipRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		relRepo:  relRepo,
		userRepo: userRepo,
	}
}

// Follow creates a follow edge. Re-following is an idempotent no-op that
// returns the existing edge: of two concurrent identical requests one
// wins the insert, the other gets the duplicate result, and both report
// success because the edge now exists either way.
func (s *GraphService) Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if followerID == followingID {
		observability.EdgeWrites.WithLabelValues("follow", observability.OutcomeRejected).Inc()
		return nil, models.NewSelfReferenceError("follow")
	}
	if err := s.requireUsers(ctx, followerID, followingID); err != nil {
		return nil, err
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	err := s.relRepo.InsertFollow(ctx, follow)
	if models.IsDuplicateEdge(err) {
		observability.EdgeWrites.WithLabelValues("follow", observability.OutcomeDuplicate).Inc()
		return s.relRepo.GetFollow(ctx, followerID, followingID)
	}
	if err != nil {
		return nil, err
	}
	observability.EdgeWrites.WithLabelValues("follow", observability.OutcomeCreated).Inc()
	return follow, nil
}

// Unfollow removes a follow edge. Removing an absent edge succeeds: the
// requested state ("not following") already holds.
func (s *GraphService) Unfollow(ctx context.Context, followerID, followingID string) error {
	return s.relRepo.RemoveFollow(ctx, followerID, followingID)
}

// Block creates a block edge. Existing follow edges between the pair are
// left untouched; suppression is applied at read time, which keeps the
// block itself O(1).
func (s *GraphService) Block(ctx context.Context, blockerID, blockedID string) (*models.Block, error) {
	if blockerID == blockedID {
		observability.EdgeWrites.WithLabelValues("block", observability.OutcomeRejected).Inc()
		return nil, models.NewSelfReferenceError("block")
	}
	if err := s.requireUsers(ctx, blockerID, blockedID); err != nil {
		return nil, err
	}

	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	err := s.relRepo.InsertBlock(ctx, block)
	if models.IsDuplicateEdge(err) {
		observability.EdgeWrites.WithLabelValues("block", observability.OutcomeDuplicate).Inc()
		return s.relRepo.GetBlock(ctx, blockerID, blockedID)
	}
	if err != nil {
		return nil, err
	}
	observability.EdgeWrites.WithLabelValues("block", observability.OutcomeCreated).Inc()
	return block, nil
}

// Unblock removes a block edge; only the blocker's own edge is touched.
// Idempotent like Unfollow.
func (s *GraphService) Unblock(ctx context.Context, blockerID, blockedID string) error {
	return s.relRepo.RemoveBlock(ctx, blockerID, blockedID)
}

// FollowPage is one page of follow edges plus the continuation cursor.
type FollowPage struct {
	Follows    []models.Follow `json:"follows"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// GetFollowers returns a page of users following userID.
func (s *GraphService) GetFollowers(ctx context.Context, userID, cursorToken string, pageSize int) (*FollowPage, error) {
	return s.followPage(ctx, cursorToken, pageSize, func(c *pagination.Cursor, limit int) ([]models.Follow, error) {
		return s.relRepo.ListFollowers(ctx, userID, c, limit)
	})
}

// GetFollowing returns a page of users that userID follows.
func (s *GraphService) GetFollowing(ctx context.Context, userID, cursorToken string, pageSize int) (*FollowPage, error) {
	return s.followPage(ctx, cursorToken, pageSize, func(c *pagination.Cursor, limit int) ([]models.Follow, error) {
		return s.relRepo.ListFollowing(ctx, userID, c, limit)
	})
}

func (s *GraphService) followPage(ctx context.Context, cursorToken string, pageSize int, list func(*pagination.Cursor, int) ([]models.Follow, error)) (*FollowPage, error) {
	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	pageSize = pagination.ClampPageSize(pageSize)

	follows, err := list(cursor, pageSize)
	if err != nil {
		return nil, err
	}

	page := &FollowPage{Follows: follows}
	if n := len(follows); n > 0 {
		last := follows[n-1]
		page.NextCursor = pagination.Next(last.CreatedAt, last.ID, n, pageSize)
	}
	return page, nil
}

func (s *GraphService) requireUsers(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewNotFoundError("User", id)
		}
	}
	return nil
}
