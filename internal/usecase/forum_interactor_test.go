package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

func TestForum_CategoryAdminOnly(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	root := e.admin(t, "root")

	_, err := e.forum.CreateCategory(e.ctx, alice, usecase.CategoryInput{Name: ptr("general")})
	assert.True(t, apperrors.IsForbidden(err))
	_, err = e.forum.CreateCategory(e.ctx, nil, usecase.CategoryInput{Name: ptr("general")})
	assert.True(t, apperrors.IsUnauthorized(err))

	c, err := e.forum.CreateCategory(e.ctx, root, usecase.CategoryInput{Name: ptr("general")})
	require.NoError(t, err)
	assert.True(t, c.IsActive)

	_, err = e.forum.UpdateCategory(e.ctx, root, c.ID, usecase.CategoryInput{IsActive: ptr(false)})
	require.NoError(t, err)
	cats, err := e.forum.Categories(e.ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = e.forum.CreateTopic(e.ctx, alice, c.ID, usecase.TopicInput{Title: "hi", Content: "hello"})
	assert.True(t, apperrors.IsBadRequest(err))

	require.NoError(t, e.forum.DeleteCategory(e.ctx, root, c.ID))
	assert.True(t, apperrors.IsNotFound(e.forum.DeleteCategory(e.ctx, root, c.ID)))
}

func TestForum_TopicsAndPosts(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	root := e.admin(t, "root")

	c, err := e.forum.CreateCategory(e.ctx, root, usecase.CategoryInput{Name: ptr("general")})
	require.NoError(t, err)

	topic, err := e.forum.CreateTopic(e.ctx, alice, c.ID, usecase.TopicInput{Title: "Dune", Content: "thoughts?"})
	require.NoError(t, err)

	viewed, err := e.forum.Topic(e.ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.ViewCount)

	_, err = e.forum.UpdateTopic(e.ctx, bob, topic.ID, usecase.TopicInput{Title: "mine"})
	assert.True(t, apperrors.IsForbidden(err))

	reply, err := e.forum.CreatePost(e.ctx, bob, topic.ID, usecase.PostInput{Content: "loved it"})
	require.NoError(t, err)

	_, err = e.forum.TogglePin(e.ctx, alice, topic.ID)
	assert.True(t, apperrors.IsForbidden(err))
	locked, err := e.forum.ToggleLock(e.ctx, root, topic.ID)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	_, err = e.forum.CreatePost(e.ctx, bob, topic.ID, usecase.PostInput{Content: "again"})
	assert.True(t, apperrors.IsForbidden(err))

	_, err = e.forum.UpdatePost(e.ctx, alice, reply.ID, usecase.PostInput{Content: "edited"})
	assert.True(t, apperrors.IsForbidden(err))
	assert.True(t, apperrors.IsForbidden(e.forum.DeletePost(e.ctx, alice, reply.ID)))
	require.NoError(t, e.forum.DeletePost(e.ctx, root, reply.ID))
	_, err = e.forum.UpdatePost(e.ctx, bob, reply.ID, usecase.PostInput{Content: "edited"})
	assert.True(t, apperrors.IsBadRequest(err))

	posts, err := e.forum.Posts(e.ctx, topic.ID, firstPage)
	require.NoError(t, err)
	require.Len(t, posts.Posts, 2)
	assert.Equal(t, "thoughts?", posts.Posts[0].Content)
	assert.Equal(t, "alice", posts.Posts[0].User.UserName)
	assert.True(t, posts.Posts[1].IsDeleted)
	assert.Empty(t, posts.Posts[1].Content)

	assert.True(t, apperrors.IsForbidden(e.forum.DeleteTopic(e.ctx, bob, topic.ID)))
	require.NoError(t, e.forum.DeleteTopic(e.ctx, alice, topic.ID))
	_, err = e.forum.Topic(e.ctx, topic.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
