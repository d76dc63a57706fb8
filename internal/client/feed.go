package client

import (
	"github.com/jaylee-dev/blog_comment_server/internal/model"
	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
)

// Feed 一篇文章的客户端评论视图：API 调用与缓存镜像的组装层
// 所有缓存变更都发生在服务端确认之后，失败的调用不改动本地状态
type Feed struct {
	api    *Client
	postID string
	Cache  *CommentCache
	Likes  *LikeCoordinator
}

// OpenFeed 拉取文章评论树并建立本地镜像
func OpenFeed(api *Client, store *LikeStore, postID string) (*Feed, error) {
	nodes, total, err := api.ListComments(postID)
	if err != nil {
		return nil, err
	}

	cache := NewCommentCache(nodes, total)
	return &Feed{
		api:    api,
		postID: postID,
		Cache:  cache,
		Likes:  NewLikeCoordinator(api, cache, store),
	}, nil
}

// Comment 发表评论，成功后挂载到本地树
func (f *Feed) Comment(req *dto.CreateCommentRequest) (*dto.CommentNode, error) {
	created, err := f.api.CreateComment(f.postID, req)
	if err != nil {
		return nil, err
	}

	f.Cache.Attach(created, req.ParentID)
	return created, nil
}

// Edit 修改评论，成功后替换本地内容
func (f *Feed) Edit(id, content, password string) error {
	result, err := f.api.EditComment(id, &dto.EditCommentRequest{
		Content:  content,
		Password: password,
	})
	if err != nil {
		return err
	}

	f.Cache.UpdateContent(id, result.Content)
	return nil
}

// Delete 删除评论，按服务端执行的分支应用对应的本地变更：
// 硬删除移除节点，软删除只替换为占位文本
func (f *Feed) Delete(id, password string) (*dto.DeleteCommentResponse, error) {
	result, err := f.api.DeleteComment(id, password)
	if err != nil {
		return nil, err
	}

	if result.SoftDeleted {
		f.Cache.MarkDeleted(id, model.DeletedContent)
	} else {
		f.Cache.Remove(id)
	}

	return result, nil
}

// ToggleLike 乐观点赞，返回展示用的点赞数
func (f *Feed) ToggleLike(id string) (int, error) {
	current, ok := f.Cache.LikeCount(id)
	if !ok {
		current = 0
	}
	return f.Likes.Toggle(id, current)
}
