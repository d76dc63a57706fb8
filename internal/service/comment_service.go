package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/config"
	"github.com/jaylee-dev/blog_comment_server/internal/model"
	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/apperr"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/pubsub"
	"github.com/jaylee-dev/blog_comment_server/internal/repository"
)

// MaxDepth 回复最大层级，根评论为 0
const MaxDepth = 10

// MaxContentLength 评论内容最大长度（按字符计）
const MaxContentLength = 1000

var (
	ErrPostNotFound     = apperr.NotFound("文章不存在")
	ErrCommentNotFound  = apperr.NotFound("评论不存在")
	ErrParentNotFound   = apperr.NotFound("父评论不存在")
	ErrParentNotInPost  = apperr.Validation("父评论不属于该文章")
	ErrDepthLimit       = apperr.Validation("回复层级超出限制")
	ErrCommentDeleted   = apperr.State("评论已删除")
	ErrPasswordMismatch = apperr.Auth("密码错误")
	ErrAuthorPassword   = apperr.Auth("作者密码验证失败")
	ErrInvalidNickname  = apperr.Validation("昵称格式不正确")
	ErrInvalidContent   = apperr.Validation("评论内容长度需在 1~1000 之间")
)

var nicknamePattern = regexp.MustCompile(`^[\p{L}\p{N}_ ]{1,20}$`)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	publisher   *pubsub.Publisher
	cfg         *config.Config
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Create 创建评论
func (s *CommentService) Create(postID string, req *dto.CreateCommentRequest) (*dto.CommentNode, error) {
	if n := utf8.RuneCountInString(req.Content); n < 1 || n > MaxContentLength {
		return nil, ErrInvalidContent
	}
	if !nicknamePattern.MatchString(req.Nickname) {
		return nil, ErrInvalidNickname
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// 层级由父评论在创建时刻计算，创建后不可变
	depth := 0
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}

		if parent.PostID != postID {
			return nil, ErrParentNotInPost
		}

		depth = parent.Depth + 1
		if depth > MaxDepth {
			return nil, ErrDepthLimit
		}
	}

	// 声明为作者时必须通过文章密码验证，失败即拒绝，不做静默降级
	if req.IsAuthor {
		if err := bcrypt.CompareHashAndPassword([]byte(post.PasswordHash), []byte(req.Password)); err != nil {
			return nil, ErrAuthorPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:       postID,
		ParentID:     req.ParentID,
		Content:      req.Content,
		Nickname:     req.Nickname,
		PasswordHash: string(hash),
		Depth:        depth,
		IsAuthor:     req.IsAuthor,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// 结构性变更后由源数据重算计数
	if comment.ParentID != nil {
		if _, err := s.commentRepo.RecountReplies(*comment.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.recountPostComments(postID); err != nil {
		return nil, err
	}

	return newCommentNode(comment), nil
}

// Edit 修改评论内容，需密码验证
func (s *CommentService) Edit(id string, req *dto.EditCommentRequest) (*dto.EditCommentResponse, error) {
	comment, err := s.getForUpdate(id, req.Password)
	if err != nil {
		return nil, err
	}

	if n := utf8.RuneCountInString(req.Content); n < 1 || n > MaxContentLength {
		return nil, ErrInvalidContent
	}

	if err := s.commentRepo.UpdateContent(comment.ID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return &dto.EditCommentResponse{
		ID:        updated.ID,
		Content:   updated.Content,
		UpdatedAt: updated.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// Delete 删除评论
// 有子评论则软删除（内容替换为占位文本，行保留，计数不变）
// 无子评论则硬删除（移除行并重算父级与文章计数）
func (s *CommentService) Delete(id string, req *dto.DeleteCommentRequest) (*dto.DeleteCommentResponse, error) {
	comment, err := s.getForUpdate(id, req.Password)
	if err != nil {
		return nil, err
	}

	hasChildren, err := s.commentRepo.HasChildren(comment.ID)
	if err != nil {
		return nil, err
	}

	if hasChildren {
		if err := s.commentRepo.SoftDelete(comment.ID, time.Now()); err != nil {
			return nil, err
		}
		return &dto.DeleteCommentResponse{
			SoftDeleted: true,
			CommentID:   comment.ID,
		}, nil
	}

	if err := s.commentRepo.HardDelete(comment.ID); err != nil {
		return nil, err
	}

	if comment.ParentID != nil {
		if _, err := s.commentRepo.RecountReplies(*comment.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.recountPostComments(comment.PostID); err != nil {
		return nil, err
	}

	return &dto.DeleteCommentResponse{
		Deleted:   true,
		CommentID: comment.ID,
	}, nil
}

// Like 按客户端声明的目标状态调整点赞数，返回服务端权威值
func (s *CommentService) Like(id string, liked bool) (*dto.LikeResponse, error) {
	if _, err := s.getComment(id); err != nil {
		return nil, err
	}

	delta := -1
	if liked {
		delta = 1
	}

	if err := s.commentRepo.AdjustLikeCount(id, delta); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{LikeCount: updated.LikeCount}, nil
}

// Verify 校验评论密码，供编辑/删除前的预检
func (s *CommentService) Verify(id string, password string) (*dto.VerifyResponse, error) {
	comment, err := s.getComment(id)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(comment.PasswordHash), []byte(password))
	return &dto.VerifyResponse{Valid: err == nil}, nil
}

// ListByPostID 获取文章的嵌套评论树及评论总数
func (s *CommentService) ListByPostID(postID string) ([]*dto.CommentNode, int64, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, err
	}

	rows, err := s.commentRepo.ListByPostID(postID)
	if err != nil {
		return nil, 0, err
	}

	return BuildCommentTree(rows), int64(len(rows)), nil
}

func (s *CommentService) getComment(id string) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// getForUpdate 编辑/删除共用的前置检查：存在、未删除、密码正确
func (s *CommentService) getForUpdate(id, password string) (*model.Comment, error) {
	comment, err := s.getComment(id)
	if err != nil {
		return nil, err
	}

	if comment.IsDeleted {
		return nil, ErrCommentDeleted
	}

	if err := bcrypt.CompareHashAndPassword([]byte(comment.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	return comment, nil
}

// recountPostComments 重算文章评论总数并发布变更事件
func (s *CommentService) recountPostComments(postID string) error {
	total, err := s.commentRepo.CountByPostID(postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.SetCommentCount(postID, total); err != nil {
		return err
	}

	// 事件发布尽力而为，失败只记录不阻断
	if s.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.publisher.PublishCount(ctx, postID, total); err != nil {
			log.Printf("Failed to publish comment count for post %s: %v", postID, err)
		}
	}

	return nil
}
