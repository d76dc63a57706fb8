package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/internal/model"
	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/repository"
)

type PostService struct {
	postRepo *repository.PostRepository
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create 创建文章
func (s *PostService) Create(req *dto.CreatePostRequest) (*dto.PostItem, error) {
	if !nicknamePattern.MatchString(req.Nickname) {
		return nil, ErrInvalidNickname
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:        req.Title,
		Content:      req.Content,
		Nickname:     req.Nickname,
		PasswordHash: string(hash),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return buildPostItem(post), nil
}

// Get 获取文章
func (s *PostService) Get(id string) (*dto.PostItem, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return buildPostItem(post), nil
}

func buildPostItem(p *model.Post) *dto.PostItem {
	return &dto.PostItem{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Nickname:     p.Nickname,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
