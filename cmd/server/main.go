package main

import (
	"fmt"
	"log"

	"github.com/jaylee-dev/blog_comment_server/config"
	"github.com/jaylee-dev/blog_comment_server/internal/api"
	"github.com/jaylee-dev/blog_comment_server/internal/api/handler"
	"github.com/jaylee-dev/blog_comment_server/internal/database"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/pubsub"
	"github.com/jaylee-dev/blog_comment_server/internal/repository"
	"github.com/jaylee-dev/blog_comment_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Repository
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化 Service
	publisher := pubsub.NewPublisher(rdb)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, publisher, cfg)

	// 初始化 Handler
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	// 初始化 Router
	router := api.NewRouter(postHandler, commentHandler, rdb, cfg)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
