package service

import (
	"context"
	"strings"

	"snipshare/internal/models"
	"snipshare/internal/pagination"
	"snipshare/internal/repository"
)

// ModerationService manages report filing and the report status
// lifecycle. Status transitions are made by a moderation actor; the
// engine only enforces the lifecycle and exposes current status.
type ModerationService struct {
	modRepo     repository.ModerationRepository
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
}

// NewModerationService returns a new ModerationService.
func NewModerationService(modRepo repository.ModerationRepository, userRepo repository.UserRepository, contentRepo repository.ContentRepository) *ModerationService {
	return &ModerationService{
		modRepo:     modRepo,
		userRepo:    userRepo,
		contentRepo: contentRepo,
	}
}

// FileReport files a report against a user, optionally scoped to one of
// that user's posts. Self-reports are rejected; there is no uniqueness
// constraint, a user may file any number of reports.
func (s *ModerationService) FileReport(ctx context.Context, reporterID, reportedID string, postID *string, reason string) (*models.Report, error) {
	if reporterID == reportedID {
		return nil, models.NewSelfReferenceError("report")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, models.NewValidationError("report reason must not be empty")
	}
	for _, id := range []string{reporterID, reportedID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewNotFoundError("User", id)
		}
	}

	if postID != nil {
		post, err := s.contentRepo.GetByID(ctx, *postID, "")
		if err != nil {
			return nil, err
		}
		if post.AuthorID != reportedID {
			return nil, models.NewValidationError("reported post does not belong to the reported user")
		}
	}

	report := &models.Report{
		Reason:     reason,
		ReporterID: reporterID,
		ReportedID: reportedID,
		PostID:     postID,
	}
	if err := s.modRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ResolveReport moves an open report to resolved. With takedown set, a
// post-scoped report suppresses the post from all list queries.
func (s *ModerationService) ResolveReport(ctx context.Context, reportID string, takedown bool) error {
	if takedown {
		report, err := s.modRepo.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if report.PostID == nil {
			return models.NewValidationError("takedown requires a post-scoped report")
		}
	}
	return s.modRepo.Resolve(ctx, reportID, takedown)
}

// DismissReport moves an open report to dismissed. Dismissed reports
// never affect visibility.
func (s *ModerationService) DismissReport(ctx context.Context, reportID string) error {
	return s.modRepo.Dismiss(ctx, reportID)
}

// GetReport returns a report with its current status.
func (s *ModerationService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	return s.modRepo.GetByID(ctx, reportID)
}

// ReportPage is one page of reports plus the continuation cursor.
type ReportPage struct {
	Reports    []models.Report `json:"reports"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// ListOpenReports returns a page of reports awaiting moderation.
func (s *ModerationService) ListOpenReports(ctx context.Context, cursorToken string, pageSize int) (*ReportPage, error) {
	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	pageSize = pagination.ClampPageSize(pageSize)

	reports, err := s.modRepo.ListOpen(ctx, cursor, pageSize)
	if err != nil {
		return nil, err
	}

	page := &ReportPage{Reports: reports}
	if n := len(reports); n > 0 {
		last := reports[n-1]
		page.NextCursor = pagination.Next(last.CreatedAt, last.ID, n, pageSize)
	}
	return page, nil
}
