package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	Date     string `gorm:"size:250;not null" json:"date"` // display string, stamped once at creation
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"size:250;not null" json:"img_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE;" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries, not a column.
	CommentCount int `gorm:"-" json:"comment_count"`
}
