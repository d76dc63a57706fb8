package client

import (
	"sync"

	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
)

// CommentCache 单篇文章评论树的内存镜像
// 仅在对应服务端调用成功后修改，失败的请求不触碰缓存
type CommentCache struct {
	mu    sync.Mutex
	roots []*dto.CommentNode
	total int64
}

func NewCommentCache(roots []*dto.CommentNode, total int64) *CommentCache {
	if roots == nil {
		roots = []*dto.CommentNode{}
	}
	return &CommentCache{roots: roots, total: total}
}

// Roots 当前根评论列表
func (c *CommentCache) Roots() []*dto.CommentNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roots
}

// Total 当前评论总数
func (c *CommentCache) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Attach 挂载新评论：回复追加到父节点 replies 末尾并重算 reply_count，
// 根评论插入列表头部（根列表保持最新在前），总数加一
func (c *CommentCache) Attach(comment *dto.CommentNode, parentID *string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if comment.Replies == nil {
		comment.Replies = []*dto.CommentNode{}
	}

	if parentID == nil {
		c.roots = append([]*dto.CommentNode{comment}, c.roots...)
		c.total++
		return true
	}

	parent := c.find(*parentID)
	if parent == nil {
		return false
	}

	parent.Replies = append(parent.Replies, comment)
	parent.ReplyCount = len(parent.Replies)
	c.total++
	return true
}

// UpdateContent 替换指定节点的内容（编辑成功或应用软删除占位文本）
func (c *CommentCache) UpdateContent(id, content string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.find(id)
	if node == nil {
		return false
	}
	node.Content = content
	return true
}

// MarkDeleted 将节点置为软删除状态（内容换为占位文本）
func (c *CommentCache) MarkDeleted(id, sentinel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.find(id)
	if node == nil {
		return false
	}
	node.Content = sentinel
	node.IsDeleted = true
	return true
}

// Remove 从所在数组中移除节点，所在父节点 reply_count 重算为剩余长度，总数减一
func (c *CommentCache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, root := range c.roots {
		if root.ID == id {
			c.roots = append(c.roots[:i:i], c.roots[i+1:]...)
			c.total--
			return true
		}
	}

	// 显式栈做深度优先，找到即停
	stack := make([]*dto.CommentNode, len(c.roots))
	copy(stack, c.roots)
	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i, reply := range parent.Replies {
			if reply.ID == id {
				parent.Replies = append(parent.Replies[:i:i], parent.Replies[i+1:]...)
				parent.ReplyCount = len(parent.Replies)
				c.total--
				return true
			}
		}
		stack = append(stack, parent.Replies...)
	}

	return false
}

// UpdateLikeCount 设置指定节点的点赞数
func (c *CommentCache) UpdateLikeCount(id string, count int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.find(id)
	if node == nil {
		return false
	}
	node.LikeCount = count
	return true
}

// LikeCount 读取指定节点当前的点赞数
func (c *CommentCache) LikeCount(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.find(id)
	if node == nil {
		return 0, false
	}
	return node.LikeCount, true
}

// find 显式栈深度优先查找，ID 全局唯一，命中即返回
// 调用方需持有锁
func (c *CommentCache) find(id string) *dto.CommentNode {
	stack := make([]*dto.CommentNode, len(c.roots))
	copy(stack, c.roots)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.ID == id {
			return node
		}
		stack = append(stack, node.Replies...)
	}

	return nil
}
