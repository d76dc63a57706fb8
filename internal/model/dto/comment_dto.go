package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Content  string  `json:"content" binding:"required,min=1,max=1000"`
	Nickname string  `json:"nickname" binding:"required,min=1,max=20"`
	Password string  `json:"password" binding:"required,min=4,max=72"`
	IsAuthor bool    `json:"is_author"`
}

// EditCommentRequest 修改评论请求
type EditCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=1000"`
	Password string `json:"password" binding:"required"`
}

// DeleteCommentRequest 删除评论请求
type DeleteCommentRequest struct {
	Password string `json:"password" binding:"required"`
}

// LikeCommentRequest 点赞请求，liked 为客户端声明的目标状态
type LikeCommentRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

// VerifyCommentRequest 密码校验请求
type VerifyCommentRequest struct {
	Password string `json:"password" binding:"required"`
}

// CommentNode 嵌套评论节点，仅由树构建器生成，不落库
type CommentNode struct {
	ID         string         `json:"id"`
	PostID     string         `json:"post_id"`
	ParentID   *string        `json:"parent_id,omitempty"`
	Content    string         `json:"content"`
	Nickname   string         `json:"nickname"`
	Depth      int            `json:"depth"`
	LikeCount  int            `json:"like_count"`
	ReplyCount int            `json:"reply_count"`
	IsAuthor   bool           `json:"is_author"`
	IsDeleted  bool           `json:"is_deleted"`
	Replies    []*CommentNode `json:"replies"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

// EditCommentResponse 修改评论响应
type EditCommentResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updated_at"`
}

// DeleteCommentResponse 删除评论响应，区分硬删除与软删除分支
type DeleteCommentResponse struct {
	Deleted     bool   `json:"deleted"`
	SoftDeleted bool   `json:"soft_deleted"`
	CommentID   string `json:"comment_id"`
}

// LikeResponse 点赞响应，like_count 以服务端为准
type LikeResponse struct {
	LikeCount int `json:"like_count"`
}

// VerifyResponse 密码校验响应
type VerifyResponse struct {
	Valid bool `json:"valid"`
}
