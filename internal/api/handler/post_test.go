package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/internal/repository"
	"github.com/jaylee-dev/blog_comment_server/internal/service"
	"github.com/jaylee-dev/blog_comment_server/internal/testutil"
)

func setupPostRouter(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	postRepo := repository.NewPostRepository(db)
	handler := NewPostHandler(service.NewPostService(postRepo))

	router := gin.New()
	router.POST("/api/v1/posts", handler.Create)
	router.GET("/api/v1/posts/:id", handler.Get)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return router, db, cleanup
}

func TestPostHandler_Create(t *testing.T) {
	router, _, cleanup := setupPostRouter(t)
	defer cleanup()

	w := doJSON(t, router, "POST", "/api/v1/posts", gin.H{
		"title":    "My Post",
		"content":  "body",
		"nickname": "author",
		"password": "pass1234",
	})

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusCreated, w.Code)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "My Post", data["title"])
	assert.NotEmpty(t, data["id"])
}

func TestPostHandler_Get(t *testing.T) {
	router, db, cleanup := setupPostRouter(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/v1/posts/%s", post.ID), nil)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, post.Title, data["title"])
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	router, _, cleanup := setupPostRouter(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/api/v1/posts/no-such-id", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
