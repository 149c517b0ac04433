package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus is the moderation lifecycle state of a report.
// Transitions: open -> resolved, open -> dismissed. Both are terminal.
type ReportStatus string

const (
	// ReportStatusOpen is the initial state of every report.
	ReportStatusOpen ReportStatus = "open"
	// ReportStatusResolved marks a report acted on by moderation.
	ReportStatusResolved ReportStatus = "resolved"
	// ReportStatusDismissed marks a report rejected by moderation.
	ReportStatusDismissed ReportStatus = "dismissed"
)

// ReasonClassContentRemoved is stamped onto a resolved report when the
// resolution takes the reported post down. Only this combination
// (resolved + content-removed + post-scoped) suppresses visibility.
const ReasonClassContentRemoved = "content-removed"

// Report is a user-against-user moderation report, optionally scoped to
// a specific post by the reported user. Multiple reports per pair are
// allowed; self-reports are not.
type Report struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	Reason      string       `gorm:"type:text;not null" json:"reason"`
	ReasonClass string       `gorm:"index" json:"reason_class,omitempty"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ReporterID  string       `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedID  string       `gorm:"type:uuid;not null;index" json:"reported_id"`
	PostID      *string      `gorm:"type:uuid;index" json:"post_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`

	Reporter User  `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reported User  `gorm:"foreignKey:ReportedID" json:"reported,omitempty"`
	Post     *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// BeforeCreate assigns a UUID primary key and initial status.
func (r *Report) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReportStatusOpen
	}
	return nil
}

// Terminal reports cannot transition again.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}
