package dto

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Content  string `json:"content"`
	Nickname string `json:"nickname" binding:"required,min=1,max=20"`
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// PostItem 文章信息
type PostItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Nickname     string `json:"nickname"`
	CommentCount int    `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
}
