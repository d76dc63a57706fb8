package testutil

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/internal/model"
)

// DefaultPassword 测试夹具使用的明文密码
const DefaultPassword = "pass1234"

// HashPassword 生成测试用 bcrypt 哈希（最低 cost，加快测试）
func HashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

// TestPost 创建测试文章
func TestPost(t *testing.T, db *gorm.DB, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	post := &model.Post{
		Title:        fmt.Sprintf("Test Post %d", time.Now().UnixNano()%10000),
		Content:      "Test post content",
		Nickname:     "author",
		PasswordHash: HashPassword(t, DefaultPassword),
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithPostPassword 设置文章作者密码
func WithPostPassword(t *testing.T, password string) func(*model.Post) {
	return func(p *model.Post) {
		p.PasswordHash = HashPassword(t, password)
	}
}

// TestComment 创建测试根评论
func TestComment(t *testing.T, db *gorm.DB, postID, content string, opts ...func(*model.Comment)) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		PostID:       postID,
		Content:      content,
		Nickname:     "tester",
		PasswordHash: HashPassword(t, DefaultPassword),
		Depth:        0,
	}

	for _, opt := range opts {
		opt(comment)
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// TestReply 创建测试回复，depth 取父评论 depth+1
func TestReply(t *testing.T, db *gorm.DB, parent *model.Comment, content string, opts ...func(*model.Comment)) *model.Comment {
	t.Helper()

	opts = append([]func(*model.Comment){
		func(c *model.Comment) {
			c.ParentID = &parent.ID
			c.Depth = parent.Depth + 1
		},
	}, opts...)

	return TestComment(t, db, parent.PostID, content, opts...)
}

// WithNickname 设置评论昵称
func WithNickname(nickname string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.Nickname = nickname
	}
}

// WithPassword 设置评论密码
func WithPassword(t *testing.T, password string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.PasswordHash = HashPassword(t, password)
	}
}

// WithCreatedAt 设置创建时间（用于排序相关测试）
func WithCreatedAt(at time.Time) func(*model.Comment) {
	return func(c *model.Comment) {
		c.CreatedAt = at
	}
}

// WithLikeCount 设置点赞数
func WithLikeCount(n int) func(*model.Comment) {
	return func(c *model.Comment) {
		c.LikeCount = n
	}
}

// WithDeleted 标记为软删除状态
func WithDeleted() func(*model.Comment) {
	return func(c *model.Comment) {
		c.Content = model.DeletedContent
		c.IsDeleted = true
		now := time.Now()
		c.DeletedAt = &now
	}
}
