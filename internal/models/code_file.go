package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeFile is a source file attached to a post. It exists only while
// its post exists; cascades delete it with the post.
type CodeFile struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Filename string `gorm:"not null" json:"filename"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Language string `json:"language"`
	PostID   string `gorm:"type:uuid;not null;index" json:"post_id"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (f *CodeFile) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
