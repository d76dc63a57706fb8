package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/apperr"
)

// Client 评论服务 API 客户端
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// envelope 服务端统一响应结构
type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

// do 发起请求并解码统一响应，失败时返回携带状态码的业务错误
func (c *Client) do(method, path string, body interface{}, out interface{}) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		return nil, &apperr.Error{
			Status:  resp.StatusCode,
			Code:    env.Code,
			Message: env.Message,
		}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode data: %w", err)
		}
	}

	return &env, nil
}

// ListComments 获取文章评论树及总数
func (c *Client) ListComments(postID string) ([]*dto.CommentNode, int64, error) {
	var nodes []*dto.CommentNode
	env, err := c.do(http.MethodGet, "/api/v1/posts/"+postID+"/comments", nil, &nodes)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if env.Meta != nil {
		total = env.Meta.Total
	}

	for i, node := range nodes {
		nodes[i] = normalizeNode(node)
	}

	return nodes, total, nil
}

// CreateComment 发表评论
func (c *Client) CreateComment(postID string, req *dto.CreateCommentRequest) (*dto.CommentNode, error) {
	var node dto.CommentNode
	if _, err := c.do(http.MethodPost, "/api/v1/posts/"+postID+"/comments", req, &node); err != nil {
		return nil, err
	}
	return normalizeNode(&node), nil
}

// EditComment 修改评论
func (c *Client) EditComment(id string, req *dto.EditCommentRequest) (*dto.EditCommentResponse, error) {
	var result dto.EditCommentResponse
	if _, err := c.do(http.MethodPost, "/api/v1/comments/"+id+"/edit", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteComment 删除评论，响应区分硬删除与软删除
func (c *Client) DeleteComment(id, password string) (*dto.DeleteCommentResponse, error) {
	var result dto.DeleteCommentResponse
	req := &dto.DeleteCommentRequest{Password: password}
	if _, err := c.do(http.MethodPost, "/api/v1/comments/"+id+"/delete", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LikeComment 按目标状态点赞/取消点赞
func (c *Client) LikeComment(id string, liked bool) (*dto.LikeResponse, error) {
	var result dto.LikeResponse
	req := &dto.LikeCommentRequest{Liked: &liked}
	if _, err := c.do(http.MethodPost, "/api/v1/comments/"+id+"/like", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyComment 校验评论密码
func (c *Client) VerifyComment(id, password string) (*dto.VerifyResponse, error) {
	var result dto.VerifyResponse
	req := &dto.VerifyCommentRequest{Password: password}
	if _, err := c.do(http.MethodPost, "/api/v1/comments/"+id+"/verify", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// normalizeNode 解码边界上统一补齐可选字段，嵌套节点一并处理
func normalizeNode(node *dto.CommentNode) *dto.CommentNode {
	if node.Replies == nil {
		node.Replies = []*dto.CommentNode{}
	}
	for i, reply := range node.Replies {
		node.Replies[i] = normalizeNode(reply)
	}
	return node
}
