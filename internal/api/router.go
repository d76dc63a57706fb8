package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/jaylee-dev/blog_comment_server/config"
	"github.com/jaylee-dev/blog_comment_server/internal/api/handler"
	"github.com/jaylee-dev/blog_comment_server/internal/api/middleware"
)

type Router struct {
	postHandler    *handler.PostHandler
	commentHandler *handler.CommentHandler
	rdb            *redis.Client
	cfg            *config.Config
}

func NewRouter(
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	rdb *redis.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		postHandler:    postHandler,
		commentHandler: commentHandler,
		rdb:            rdb,
		cfg:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	writeLimit := middleware.RateLimit(
		r.rdb,
		r.cfg.Comment.RateLimit,
		time.Duration(r.cfg.Comment.RateLimitWindow)*time.Second,
	)

	api := engine.Group("/api/v1")
	{
		// 文章
		posts := api.Group("/posts")
		{
			posts.POST("", r.postHandler.Create)
			posts.GET("/:id", r.postHandler.Get)
			posts.GET("/:id/comments", r.commentHandler.List)
			posts.POST("/:id/comments", writeLimit, r.commentHandler.Create)
		}

		// 评论
		comments := api.Group("/comments")
		{
			comments.POST("/:id/edit", r.commentHandler.Edit)
			comments.POST("/:id/delete", r.commentHandler.Delete)
			comments.POST("/:id/like", r.commentHandler.Like)
			comments.POST("/:id/verify", r.commentHandler.Verify)
		}
	}

	return engine
}
