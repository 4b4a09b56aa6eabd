package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

var firstPage = listquery.Page{Page: 1, PerPage: 20}

func TestSocial_FollowStateMachine(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	assert.True(t, apperrors.IsBadRequest(e.social.Follow(e.ctx, alice, alice.UserID)))
	assert.True(t, apperrors.IsNotFound(e.social.Follow(e.ctx, alice, 404)))

	require.NoError(t, e.social.Follow(e.ctx, alice, bob.UserID))
	assert.True(t, apperrors.IsConflict(e.social.Follow(e.ctx, alice, bob.UserID)))

	profile, err := e.users.Profile(e.ctx, alice, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.FollowPending), profile.FollowState)
	assert.EqualValues(t, 0, profile.Followers)

	requests, err := e.social.FollowRequests(e.ctx, bob, firstPage)
	require.NoError(t, err)
	require.Len(t, requests.Users, 1)
	assert.Equal(t, "alice", requests.Users[0].UserName)

	notes, err := e.social.Notifications(e.ctx, bob, firstPage)
	require.NoError(t, err)
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, domain.NotificationFollowRequest, notes.Notifications[0].Type)

	assert.True(t, apperrors.IsNotFound(e.social.Accept(e.ctx, alice, bob.UserID)))
	require.NoError(t, e.social.Accept(e.ctx, bob, alice.UserID))
	assert.True(t, apperrors.IsNotFound(e.social.Accept(e.ctx, bob, alice.UserID)))

	followers, err := e.social.Followers(e.ctx, bob.UserID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers.Count)
	following, err := e.social.Following(e.ctx, alice.UserID, firstPage)
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	assert.Equal(t, bob.UserID, following.Users[0].ID)

	require.NoError(t, e.social.Unfollow(e.ctx, alice, bob.UserID))
	assert.True(t, apperrors.IsNotFound(e.social.Unfollow(e.ctx, alice, bob.UserID)))
}

func TestSocial_Reject(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	require.NoError(t, e.social.Follow(e.ctx, alice, bob.UserID))
	require.NoError(t, e.social.Reject(e.ctx, bob, alice.UserID))
	assert.True(t, apperrors.IsNotFound(e.social.Reject(e.ctx, bob, alice.UserID)))

	// a rejected request can be sent again
	require.NoError(t, e.social.Follow(e.ctx, alice, bob.UserID))
}

func TestSocial_Messages(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	_, err := e.social.SendMessage(e.ctx, alice, alice.UserID, usecase.MessageInput{Content: "hi"})
	assert.True(t, apperrors.IsBadRequest(err))
	_, err = e.social.SendMessage(e.ctx, alice, bob.UserID, usecase.MessageInput{Content: "   "})
	assert.True(t, apperrors.IsBadRequest(err))
	_, err = e.social.SendMessage(e.ctx, alice, 404, usecase.MessageInput{Content: "hi"})
	assert.True(t, apperrors.IsNotFound(err))

	m, err := e.social.SendMessage(e.ctx, alice, bob.UserID, usecase.MessageInput{Content: "hi bob"})
	require.NoError(t, err)

	conv, err := e.social.Conversation(e.ctx, bob, alice.UserID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, conv.Count)

	inbox, err := e.social.Inbox(e.ctx, bob, firstPage)
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 1)
	assert.False(t, inbox.Messages[0].IsRead)

	assert.True(t, apperrors.IsNotFound(e.social.MarkMessageRead(e.ctx, alice, m.ID)))
	require.NoError(t, e.social.MarkMessageRead(e.ctx, bob, m.ID))

	notes, err := e.social.Notifications(e.ctx, bob, firstPage)
	require.NoError(t, err)
	require.Len(t, notes.Notifications, 1)
	assert.True(t, apperrors.IsNotFound(e.social.MarkNotificationRead(e.ctx, alice, notes.Notifications[0].ID)))
	require.NoError(t, e.social.MarkNotificationRead(e.ctx, bob, notes.Notifications[0].ID))
}

func TestUser_ProfileAndAvatar(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")

	bio := "  cinephile "
	account, err := e.users.UpdateMe(e.ctx, alice, usecase.ProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "cinephile", account.Bio)
	assert.Equal(t, "alice@example.com", account.Email)

	account, err = e.users.SetAvatar(e.ctx, alice, pngUpload(64))
	require.NoError(t, err)
	assert.Contains(t, account.Avatar, "http://files.test/avatars/")

	_, err = e.users.Me(e.ctx, nil)
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = e.users.Profile(e.ctx, nil, 404)
	assert.True(t, apperrors.IsNotFound(err))

	found, err := e.users.Search(e.ctx, "ALI", firstPage)
	require.NoError(t, err)
	require.Len(t, found.Users, 1)
	assert.Equal(t, alice.UserID, found.Users[0].ID)
}
