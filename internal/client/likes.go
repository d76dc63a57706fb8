package client

import (
	"sync"

	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
)

// LikeAPI 点赞协调器依赖的网络调用
type LikeAPI interface {
	LikeComment(id string, liked bool) (*dto.LikeResponse, error)
}

// LikeCoordinator 乐观点赞协调器
// 每个评论一个 Idle/Pending 状态位：Pending 期间的重复触发直接丢弃；
// 网络请求发出前先同步改写缓存和本地点赞记录，
// 成功后以服务端返回值覆盖，失败则把两者精确回滚到触发前
type LikeCoordinator struct {
	api   LikeAPI
	cache *CommentCache
	store *LikeStore

	mu      sync.Mutex
	pending map[string]bool
}

func NewLikeCoordinator(api LikeAPI, cache *CommentCache, store *LikeStore) *LikeCoordinator {
	return &LikeCoordinator{
		api:     api,
		cache:   cache,
		store:   store,
		pending: map[string]bool{},
	}
}

// Toggle 切换点赞状态，返回展示用的点赞数
// Pending 中的重复调用是无操作，返回当前值且不发请求
func (l *LikeCoordinator) Toggle(id string, currentCount int) (int, error) {
	l.mu.Lock()
	if l.pending[id] {
		l.mu.Unlock()
		return currentCount, nil
	}
	l.pending[id] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.pending, id)
		l.mu.Unlock()
	}()

	wasLiked := l.store.Liked(NamespaceComments, id)
	newLiked := !wasLiked

	// 网络请求前同步应用乐观值
	optimistic := currentCount - 1
	if newLiked {
		optimistic = currentCount + 1
	}
	if optimistic < 0 {
		optimistic = 0
	}
	l.cache.UpdateLikeCount(id, optimistic)
	l.store.Set(NamespaceComments, id, newLiked)

	resp, err := l.api.LikeComment(id, newLiked)
	if err != nil {
		// 完整回滚到触发前的状态
		l.store.Set(NamespaceComments, id, wasLiked)
		l.cache.UpdateLikeCount(id, currentCount)
		return currentCount, err
	}

	// 即使数值与乐观值一致，也以服务端返回为准
	l.cache.UpdateLikeCount(id, resp.LikeCount)
	return resp.LikeCount, nil
}
