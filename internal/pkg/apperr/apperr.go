package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误类别
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeState      = "STATE_ERROR"
	CodeServer     = "SERVER_ERROR"
)

// Error 业务错误，携带 HTTP 状态码和提示信息
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 参数错误（400）
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

// Auth 密码校验失败（401）
func Auth(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeAuth, Message: message}
}

// NotFound 资源不存在（404）
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// State 状态不允许该操作（400）
func State(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeState, Message: message}
}

// Server 服务器内部错误（500）
func Server(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeServer, Message: message, Err: err}
}

// From 将任意错误归一为业务错误，未知错误按服务器错误处理
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Server("서버 오류가 발생했습니다.", err)
}
