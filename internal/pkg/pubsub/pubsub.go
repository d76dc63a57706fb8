package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelCommentCounts = "comment_counts"
)

// CountMessage 评论计数变更消息
// 结构性变更（新增/硬删除）后发布，订阅方可据此刷新各自视图
type CountMessage struct {
	Type   string `json:"type"`
	PostID string `json:"post_id"`
	Total  int64  `json:"total"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishCount 发布评论计数变更消息
func (p *Publisher) PublishCount(ctx context.Context, postID string, total int64) error {
	msg := &CountMessage{
		Type:   "comment_count_changed",
		PostID: postID,
		Total:  total,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal count message: %w", err)
	}

	return p.client.Publish(ctx, ChannelCommentCounts, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅评论计数变更消息
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*CountMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelCommentCounts)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var countMsg CountMessage
			if err := json.Unmarshal([]byte(msg.Payload), &countMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&countMsg)
		}
	}
}
