package repository

import (
	"context"
	"time"

	"snipshare/internal/models"
	"snipshare/internal/pagination"

	"gorm.io/gorm"
)

// ModerationRepository is the store for Report records and their status
// lifecycle. Reports carry no uniqueness constraint: a user may file any
// number of reports against the same target.
type ModerationRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)

	// Resolve moves an open report to the terminal resolved state. When
	// takedown is set the reason class is stamped so the reported post is
	// suppressed from all list queries.
	Resolve(ctx context.Context, id string, takedown bool) error
	Dismiss(ctx context.Context, id string) error
	ListOpen(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Report, error)

	// TakedownPostIDs is the bulk membership test used by visibility
	// resolution: of the candidate posts, which have a resolved
	// content-removed report against them.
	TakedownPostIDs(ctx context.Context, postIDs []string) (map[string]struct{}, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new moderation repository.
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return classifyError(err, "report")
	}
	return nil
}

func (r *moderationRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Report", id)
	}
	return &report, nil
}

func (r *moderationRepository) Resolve(ctx context.Context, id string, takedown bool) error {
	updates := map[string]any{
		"status":      models.ReportStatusResolved,
		"resolved_at": time.Now(),
	}
	if takedown {
		updates["reason_class"] = models.ReasonClassContentRemoved
	}
	return r.transition(ctx, id, updates)
}

func (r *moderationRepository) Dismiss(ctx context.Context, id string) error {
	return r.transition(ctx, id, map[string]any{
		"status":      models.ReportStatusDismissed,
		"resolved_at": time.Now(),
	})
}

// transition applies a terminal update only when the report is still
// open, so concurrent moderators cannot double-transition it.
func (r *moderationRepository) transition(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusOpen).
		Updates(updates)
	if res.Error != nil {
		return classifyError(res.Error, "report")
	}
	if res.RowsAffected == 0 {
		// Either the report does not exist or it is already terminal.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return models.NewValidationError("report is not open")
	}
	return nil
}

func (r *moderationRepository) ListOpen(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Report, error) {
	var reports []models.Report
	q := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("reports.status = ?", models.ReportStatusOpen)
	err := pagination.Apply(q, "reports", cursor).Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, classifyError(err, "report")
	}
	return reports, nil
}

func (r *moderationRepository) TakedownPostIDs(ctx context.Context, postIDs []string) (map[string]struct{}, error) {
	if len(postIDs) == 0 {
		return map[string]struct{}{}, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("post_id IN ? AND status = ? AND reason_class = ?",
			postIDs, models.ReportStatusResolved, models.ReasonClassContentRemoved).
		Distinct().
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, classifyError(err, "report")
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
