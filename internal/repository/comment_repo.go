package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID 获取文章的全部评论行，按创建时间升序，含软删除行
func (r *CommentRepository) ListByPostID(postID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CountChildren 统计当前存储的直接子评论数
func (r *CommentRepository) CountChildren(parentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

// HasChildren 是否存在子评论
func (r *CommentRepository) HasChildren(id string) (bool, error) {
	count, err := r.CountChildren(id)
	return count > 0, err
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Update("content", content).Error
}

// SoftDelete 软删除：内容替换为占位文本，行保留
func (r *CommentRepository) SoftDelete(id string, now time.Time) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    model.DeletedContent,
			"is_deleted": true,
			"deleted_at": now,
		}).Error
}

// HardDelete 硬删除：物理移除评论行
func (r *CommentRepository) HardDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Comment{}).Error
}

// RecountReplies 以当前子评论数重算 reply_count，返回新值
// 每次结构性变更都重算而非增减，保证计数可自愈
func (r *CommentRepository) RecountReplies(parentID string) (int64, error) {
	count, err := r.CountChildren(parentID)
	if err != nil {
		return 0, err
	}
	err = r.db.Model(&model.Comment{}).Where("id = ?", parentID).
		Update("reply_count", count).Error
	return count, err
}

// AdjustLikeCount 按增量调整点赞数，下限为 0
func (r *CommentRepository) AdjustLikeCount(id string, delta int) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Update("like_count", gorm.Expr(
			"CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", delta, delta)).Error
}

// CountByPostID 统计文章的评论总数（含软删除行）
func (r *CommentRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// ListDeletedWithoutChildren 找出已软删除且当前没有子评论的行，供清理任务回收
func (r *CommentRepository) ListDeletedWithoutChildren() ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("is_deleted = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM comments c WHERE c.parent_id = comments.id)").
		Find(&comments).Error
	return comments, err
}
