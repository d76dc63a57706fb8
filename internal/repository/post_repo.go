package repository

import (
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建文章
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据 ID 获取文章
func (r *PostRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SetCommentCount 以源数据重算结果覆盖评论总数
func (r *PostRepository) SetCommentCount(id string, count int64) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("comment_count", count).Error
}
