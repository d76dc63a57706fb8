package client

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// 点赞记录命名空间，文章与评论分开存放
const (
	NamespacePosts    = "posts"
	NamespaceComments = "comments"
)

// LikeStore 客户端本地的点赞成员集
// 只是"本客户端是否点过"的幂等提示，不是计票账本；
// 持久化为 JSON 文件，跨进程重启保留，永不过期，
// 自身读写失败只记录日志，绝不向调用方抛出
type LikeStore struct {
	path string
	mu   sync.Mutex
	sets map[string]map[string]bool
}

func NewLikeStore(path string) *LikeStore {
	s := &LikeStore{
		path: path,
		sets: map[string]map[string]bool{},
	}
	s.load()
	return s
}

// Liked 本客户端是否点赞过该条目
func (s *LikeStore) Liked(namespace, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[namespace][id]
}

// Set 记录/撤销点赞标记并落盘
func (s *LikeStore) Set(namespace, id string, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sets[namespace] == nil {
		s.sets[namespace] = map[string]bool{}
	}
	if liked {
		s.sets[namespace][id] = true
	} else {
		delete(s.sets[namespace], id)
	}

	s.save()
}

// load 启动时读取持久化文件，失败按空集处理
func (s *LikeStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read like store %s: %v", s.path, err)
		}
		return
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Failed to parse like store %s: %v", s.path, err)
		return
	}

	for namespace, ids := range raw {
		set := map[string]bool{}
		for _, id := range ids {
			set[id] = true
		}
		s.sets[namespace] = set
	}
}

// save 持久化为命名空间到 ID 数组的映射
// 调用方需持有锁
func (s *LikeStore) save() {
	raw := map[string][]string{}
	for namespace, set := range s.sets {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		raw[namespace] = ids
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal like store: %v", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("Failed to write like store %s: %v", s.path, err)
	}
}
