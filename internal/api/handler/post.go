package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/response"
	"github.com/jaylee-dev/blog_comment_server/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create 创建文章
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post)
}

// Get 获取文章
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}
