package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedContent 软删除后展示的占位内容
const DeletedContent = "该评论已删除"

type Comment struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	PostID       string     `gorm:"size:36;not null;index" json:"post_id"`
	ParentID     *string    `gorm:"size:36;index" json:"parent_id,omitempty"`
	Content      string     `gorm:"size:1000;not null" json:"content"`
	Nickname     string     `gorm:"size:20;not null" json:"nickname"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Depth        int        `gorm:"default:0;not null" json:"depth"`
	LikeCount    int        `gorm:"default:0;not null" json:"like_count"`
	ReplyCount   int        `gorm:"default:0;not null" json:"reply_count"`
	IsAuthor     bool       `gorm:"default:false" json:"is_author"`
	IsDeleted    bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
