package service

import (
	"sort"
	"time"

	"github.com/jaylee-dev/blog_comment_server/internal/model"
	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
)

// BuildCommentTree 将一篇文章的平面评论行构建为嵌套回复树
// 纯函数：相同输入必然得到结构一致的树
// 根列表按创建时间降序（新话题在前），各级回复按创建时间升序（保持对话顺序）
func BuildCommentTree(rows []*model.Comment) []*dto.CommentNode {
	nodes := make(map[string]*dto.CommentNode, len(rows))
	created := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		nodes[row.ID] = newCommentNode(row)
		created[row.ID] = row.CreatedAt
	}

	roots := make([]*dto.CommentNode, 0)
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID != nil {
			if parent, ok := nodes[*row.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
			// 父节点不在本次行集内时按根节点处理
		}
		roots = append(roots, node)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return created[roots[j].ID].Before(created[roots[i].ID])
	})
	for _, root := range roots {
		sortReplies(root, created)
	}

	return roots
}

func sortReplies(node *dto.CommentNode, created map[string]time.Time) {
	sort.SliceStable(node.Replies, func(i, j int) bool {
		return created[node.Replies[i].ID].Before(created[node.Replies[j].ID])
	})
	for _, reply := range node.Replies {
		sortReplies(reply, created)
	}
}

// newCommentNode 模型到节点的唯一映射点，可选字段在此统一赋默认值
func newCommentNode(c *model.Comment) *dto.CommentNode {
	return &dto.CommentNode{
		ID:         c.ID,
		PostID:     c.PostID,
		ParentID:   c.ParentID,
		Content:    c.Content,
		Nickname:   c.Nickname,
		Depth:      c.Depth,
		LikeCount:  c.LikeCount,
		ReplyCount: c.ReplyCount,
		IsAuthor:   c.IsAuthor,
		IsDeleted:  c.IsDeleted,
		Replies:    []*dto.CommentNode{},
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.Format(time.RFC3339),
	}
}
