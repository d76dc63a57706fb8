package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/response"
	"github.com/jaylee-dev/blog_comment_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List 获取文章的嵌套评论树
// GET /api/v1/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	postID := c.Param("id")

	nodes, total, err := h.commentService.ListByPostID(postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, nodes, total)
}

// Create 发表评论
// POST /api/v1/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID := c.Param("id")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment)
}

// Edit 修改评论
// POST /api/v1/comments/:id/edit
func (h *CommentHandler) Edit(c *gin.Context) {
	commentID := c.Param("id")

	var req dto.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.commentService.Edit(commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除评论
// POST /api/v1/comments/:id/delete
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID := c.Param("id")

	var req dto.DeleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.commentService.Delete(commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Like 点赞/取消点赞
// POST /api/v1/comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	commentID := c.Param("id")

	var req dto.LikeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.commentService.Like(commentID, *req.Liked)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Verify 校验评论密码
// POST /api/v1/comments/:id/verify
func (h *CommentHandler) Verify(c *gin.Context) {
	commentID := c.Param("id")

	var req dto.VerifyCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.commentService.Verify(commentID, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
