package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaylee-dev/blog_comment_server/config"
	"github.com/jaylee-dev/blog_comment_server/internal/model"
	"github.com/jaylee-dev/blog_comment_server/internal/model/dto"
	"github.com/jaylee-dev/blog_comment_server/internal/repository"
	"github.com/jaylee-dev/blog_comment_server/internal/testutil"
)

func setupCommentService(t *testing.T) (*CommentService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	commentRepo := repository.NewCommentRepository(db)
	postRepo := repository.NewPostRepository(db)

	svc := NewCommentService(commentRepo, postRepo, nil, &config.Config{})

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, cleanup
}

func createRequest(content string) *dto.CreateCommentRequest {
	return &dto.CreateCommentRequest{
		Content:  content,
		Nickname: "tester",
		Password: testutil.DefaultPassword,
	}
}

func TestCommentService_Create_Root(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	node, err := svc.Create(post.ID, createRequest("first comment"))
	require.NoError(t, err)

	assert.NotEmpty(t, node.ID)
	assert.Equal(t, 0, node.Depth)
	assert.Nil(t, node.ParentID)
	assert.Empty(t, node.Replies)
	assert.NotNil(t, node.Replies)

	// 文章评论总数重算
	var updated model.Post
	require.NoError(t, db.First(&updated, "id = ?", post.ID).Error)
	assert.Equal(t, 1, updated.CommentCount)
}

func TestCommentService_Create_Reply(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	parent := testutil.TestComment(t, db, post.ID, "parent")

	req := createRequest("reply")
	req.ParentID = &parent.ID

	node, err := svc.Create(post.ID, req)
	require.NoError(t, err)
	assert.Equal(t, parent.Depth+1, node.Depth)

	// 父评论 reply_count 重算
	var updated model.Comment
	require.NoError(t, db.First(&updated, "id = ?", parent.ID).Error)
	assert.Equal(t, 1, updated.ReplyCount)
}

func TestCommentService_Create_PostNotFound(t *testing.T) {
	svc, _, cleanup := setupCommentService(t)
	defer cleanup()

	_, err := svc.Create("no-such-post", createRequest("hello"))
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentService_Create_ParentNotFound(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	missing := "no-such-parent"

	req := createRequest("reply")
	req.ParentID = &missing

	_, err := svc.Create(post.ID, req)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCommentService_Create_ParentInOtherPost(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	other := testutil.TestPost(t, db)
	parent := testutil.TestComment(t, db, other.ID, "elsewhere")

	req := createRequest("reply")
	req.ParentID = &parent.ID

	_, err := svc.Create(post.ID, req)
	assert.ErrorIs(t, err, ErrParentNotInPost)
}

func TestCommentService_Create_DepthLimit(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	// 构造 depth 0..10 的链，向 depth 10 回复必须失败
	parent := testutil.TestComment(t, db, post.ID, "depth 0")
	for i := 1; i <= MaxDepth; i++ {
		parent = testutil.TestReply(t, db, parent, "deeper")
	}
	require.Equal(t, MaxDepth, parent.Depth)

	req := createRequest("too deep")
	req.ParentID = &parent.ID

	_, err := svc.Create(post.ID, req)
	assert.ErrorIs(t, err, ErrDepthLimit)

	// 失败时不落行
	var count int64
	db.Model(&model.Comment{}).Where("content = ?", "too deep").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCommentService_Create_ContentTooLong(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	_, err := svc.Create(post.ID, createRequest(strings.Repeat("a", MaxContentLength+1)))
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestCommentService_Create_EmptyContent(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	_, err := svc.Create(post.ID, createRequest(""))
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestCommentService_Create_InvalidNickname(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)

	req := createRequest("hello")
	req.Nickname = "bad<nick>"

	_, err := svc.Create(post.ID, req)
	assert.ErrorIs(t, err, ErrInvalidNickname)
}

func TestCommentService_Create_AuthorClaim(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db, testutil.WithPostPassword(t, "author-secret"))

	req := createRequest("it is me")
	req.IsAuthor = true
	req.Password = "author-secret"

	node, err := svc.Create(post.ID, req)
	require.NoError(t, err)
	assert.True(t, node.IsAuthor)
}

func TestCommentService_Create_AuthorClaim_WrongPassword(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db, testutil.WithPostPassword(t, "author-secret"))

	req := createRequest("impostor")
	req.IsAuthor = true
	req.Password = "wrong-secret"

	// 作者声明验证失败是硬失败，不做静默降级
	_, err := svc.Create(post.ID, req)
	assert.ErrorIs(t, err, ErrAuthorPassword)

	var count int64
	db.Model(&model.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCommentService_Edit(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "before")

	result, err := svc.Edit(comment.ID, &dto.EditCommentRequest{
		Content:  "after",
		Password: testutil.DefaultPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", result.Content)
	assert.Equal(t, comment.ID, result.ID)
}

func TestCommentService_Edit_NotFound(t *testing.T) {
	svc, _, cleanup := setupCommentService(t)
	defer cleanup()

	_, err := svc.Edit("no-such-id", &dto.EditCommentRequest{
		Content:  "after",
		Password: testutil.DefaultPassword,
	})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_Edit_WrongPassword(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "before")

	_, err := svc.Edit(comment.ID, &dto.EditCommentRequest{
		Content:  "after",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestCommentService_Edit_Deleted(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "gone", testutil.WithDeleted())

	_, err := svc.Edit(comment.ID, &dto.EditCommentRequest{
		Content:  "after",
		Password: testutil.DefaultPassword,
	})
	assert.ErrorIs(t, err, ErrCommentDeleted)
}

func TestCommentService_Delete_Hard(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	parent := testutil.TestComment(t, db, post.ID, "parent")
	reply := testutil.TestReply(t, db, parent, "leaf")

	// 让计数有初值可供校验
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", parent.ID).Update("reply_count", 1).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", post.ID).Update("comment_count", 2).Error)

	result, err := svc.Delete(reply.ID, &dto.DeleteCommentRequest{Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.False(t, result.SoftDeleted)

	// 行已物理移除
	var count int64
	db.Model(&model.Comment{}).Where("id = ?", reply.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// 父评论与文章计数重算
	var updatedParent model.Comment
	require.NoError(t, db.First(&updatedParent, "id = ?", parent.ID).Error)
	assert.Equal(t, 0, updatedParent.ReplyCount)

	var updatedPost model.Post
	require.NoError(t, db.First(&updatedPost, "id = ?", post.ID).Error)
	assert.Equal(t, 1, updatedPost.CommentCount)
}

func TestCommentService_Delete_Soft(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	parent := testutil.TestComment(t, db, post.ID, "parent")
	testutil.TestReply(t, db, parent, "child")

	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", parent.ID).Update("reply_count", 1).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", post.ID).Update("comment_count", 2).Error)

	result, err := svc.Delete(parent.ID, &dto.DeleteCommentRequest{Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.True(t, result.SoftDeleted)

	// 行保留，内容替换为占位文本，子评论与计数不受影响
	var updated model.Comment
	require.NoError(t, db.First(&updated, "id = ?", parent.ID).Error)
	assert.True(t, updated.IsDeleted)
	assert.Equal(t, model.DeletedContent, updated.Content)
	assert.NotNil(t, updated.DeletedAt)
	assert.Equal(t, 1, updated.ReplyCount)

	var updatedPost model.Post
	require.NoError(t, db.First(&updatedPost, "id = ?", post.ID).Error)
	assert.Equal(t, 2, updatedPost.CommentCount)
}

func TestCommentService_Delete_AlreadyDeleted(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "gone", testutil.WithDeleted())

	_, err := svc.Delete(comment.ID, &dto.DeleteCommentRequest{Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, ErrCommentDeleted)
}

func TestCommentService_Like(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "likeable", testutil.WithLikeCount(4))

	result, err := svc.Like(comment.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 5, result.LikeCount)

	result, err = svc.Like(comment.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 4, result.LikeCount)
}

func TestCommentService_Like_ClampedAtZero(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "unliked")

	result, err := svc.Like(comment.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.LikeCount)
}

func TestCommentService_Like_NotFound(t *testing.T) {
	svc, _, cleanup := setupCommentService(t)
	defer cleanup()

	_, err := svc.Like("no-such-id", true)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_Verify(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	comment := testutil.TestComment(t, db, post.ID, "secret", testutil.WithPassword(t, "mine"))

	result, err := svc.Verify(comment.ID, "mine")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = svc.Verify(comment.ID, "not-mine")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestCommentService_ListByPostID(t *testing.T) {
	svc, db, cleanup := setupCommentService(t)
	defer cleanup()

	post := testutil.TestPost(t, db)
	root := testutil.TestComment(t, db, post.ID, "root")
	testutil.TestReply(t, db, root, "reply")

	nodes, total, err := svc.ListByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Replies, 1)
	assert.Equal(t, "reply", nodes[0].Replies[0].Content)
}

func TestCommentService_ListByPostID_PostNotFound(t *testing.T) {
	svc, _, cleanup := setupCommentService(t)
	defer cleanup()

	_, _, err := svc.ListByPostID("no-such-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
