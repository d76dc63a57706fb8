package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaylee-dev/blog_comment_server/internal/pkg/apperr"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta 列表元信息
type Meta struct {
	Total int64 `json:"total"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta 带元信息的成功响应
func SuccessWithMeta(c *gin.Context, data interface{}, total int64) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total},
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Error 按业务错误返回对应的 HTTP 状态码
func Error(c *gin.Context, err error) {
	e := apperr.From(err)
	c.JSON(e.Status, Response{
		Success: false,
		Code:    e.Code,
		Message: e.Message,
		Data:    nil,
	})
}

// ParamError 参数错误（请求体解析失败等）
func ParamError(c *gin.Context, message string) {
	Error(c, apperr.Validation(message))
}
