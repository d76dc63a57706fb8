package main

import (
	"flag"
	"log"
	"os"

	"github.com/jaylee-dev/blog_comment_server/config"
	"github.com/jaylee-dev/blog_comment_server/internal/database"
	"github.com/jaylee-dev/blog_comment_server/internal/repository"
)

var (
	dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually delete rows")
)

// 回收孤儿墓碑：软删除评论的子评论被逐个硬删除后，
// 墓碑行已无结构意义，可物理移除并重算相关计数
func main() {
	flag.Parse()

	log.Println("🧹 Starting tombstone cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	commentRepo := repository.NewCommentRepository(db)
	postRepo := repository.NewPostRepository(db)

	tombstones, err := commentRepo.ListDeletedWithoutChildren()
	if err != nil {
		log.Fatalf("Failed to list tombstones: %v", err)
	}

	log.Printf("Found %d childless soft-deleted comments", len(tombstones))

	removed := 0
	for _, comment := range tombstones {
		if *dryRun {
			log.Printf("[dry-run] would remove comment %s (post %s)", comment.ID, comment.PostID)
			continue
		}

		if err := commentRepo.HardDelete(comment.ID); err != nil {
			log.Printf("Failed to remove comment %s: %v", comment.ID, err)
			continue
		}

		if comment.ParentID != nil {
			if _, err := commentRepo.RecountReplies(*comment.ParentID); err != nil {
				log.Printf("Failed to recount replies for %s: %v", *comment.ParentID, err)
			}
		}

		total, err := commentRepo.CountByPostID(comment.PostID)
		if err == nil {
			if err := postRepo.SetCommentCount(comment.PostID, total); err != nil {
				log.Printf("Failed to recount comments for post %s: %v", comment.PostID, err)
			}
		}

		removed++
	}

	log.Printf("✅ Cleanup done, removed %d rows", removed)
}
