// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a shared code post. Drafts are only visible to their author.
// ViewCount is server-incremented and never written by callers directly.
type Post struct {
	ID          string   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Language    string   `gorm:"index" json:"language"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	IsDraft     bool     `gorm:"not null;default:false;index" json:"is_draft"`
	ViewCount   int64    `gorm:"not null;default:0" json:"view_count"`
	AuthorID    string   `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CodeFiles []CodeFile `gorm:"foreignKey:PostID" json:"code_files,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->" json:"likes_count"`
	// BookmarksCount is not persisted; computed at query time
	BookmarksCount int64 `gorm:"->" json:"bookmarks_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int64 `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting viewer liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Bookmarked indicates whether the requesting viewer bookmarked this post (computed)
	Bookmarked bool `gorm:"->" json:"bookmarked"`

	CreatedAt time.Time `gorm:"index:idx_posts_created_id,priority:1" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
