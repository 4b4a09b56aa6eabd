package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

func ptr[T any](v T) *T { return &v }

func TestList_Privacy(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	carol := e.user(t, "carol")

	_, err := e.lists.Create(e.ctx, alice, usecase.ListInput{Name: ptr("x"), ContentType: "genre"})
	assert.True(t, apperrors.IsBadRequest(err))

	l, err := e.lists.Create(e.ctx, alice, usecase.ListInput{Name: ptr("later"), ContentType: "movies", IsPrivate: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindMovie, l.ContentType)

	_, err = e.lists.Get(e.ctx, bob, l.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = e.lists.Get(e.ctx, nil, l.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: alice.UserID})
	assert.True(t, apperrors.IsBadRequest(err))
	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: 404})
	assert.True(t, apperrors.IsNotFound(err))
	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: bob.UserID})
	require.NoError(t, err)
	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: bob.UserID})
	assert.True(t, apperrors.IsConflict(err))

	got, err := e.lists.Get(e.ctx, bob, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "later", got.Name)
	_, err = e.lists.Get(e.ctx, carol, l.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.lists.Update(e.ctx, bob, l.ID, usecase.ListInput{Name: ptr("mine")})
	assert.True(t, apperrors.IsForbidden(err))
	_, err = e.lists.Update(e.ctx, alice, l.ID, usecase.ListInput{ContentType: "serie"})
	assert.True(t, apperrors.IsBadRequest(err))

	own, err := e.lists.ByUser(e.ctx, alice, alice.UserID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, own.Count)
	public, err := e.lists.ByUser(e.ctx, bob, alice.UserID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 0, public.Count)

	shared, err := e.lists.SharedWithMe(e.ctx, bob, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, shared.Count)

	assert.True(t, apperrors.IsForbidden(e.lists.Delete(e.ctx, bob, l.ID)))
	require.NoError(t, e.lists.Delete(e.ctx, alice, l.ID))
}

func TestList_Items(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	dune := e.movie(t, alice, "dune", domain.Links{})
	arrival := e.movie(t, alice, "arrival", domain.Links{})

	l, err := e.lists.Create(e.ctx, alice, usecase.ListInput{Name: ptr("best"), ContentType: "movie"})
	require.NoError(t, err)

	first, err := e.lists.AddItem(e.ctx, alice, l.ID, usecase.ListItemInput{ItemID: dune})
	require.NoError(t, err)
	assert.Equal(t, 0, first.OrderIndex)
	second, err := e.lists.AddItem(e.ctx, alice, l.ID, usecase.ListItemInput{ItemID: arrival, Note: "rewatch"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.OrderIndex)

	_, err = e.lists.AddItem(e.ctx, alice, l.ID, usecase.ListItemInput{ItemID: dune})
	assert.True(t, apperrors.IsConflict(err))
	_, err = e.lists.AddItem(e.ctx, alice, l.ID, usecase.ListItemInput{ItemID: 404})
	assert.True(t, apperrors.IsNotFound(err))

	// a share without canEdit is read-only
	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: bob.UserID})
	require.NoError(t, err)
	assert.True(t, apperrors.IsForbidden(e.lists.RemoveItem(e.ctx, bob, l.ID, dune)))

	require.NoError(t, e.lists.Unshare(e.ctx, alice, l.ID, bob.UserID))
	_, err = e.lists.Share(e.ctx, alice, l.ID, usecase.ShareInput{UserID: bob.UserID, CanEdit: true})
	require.NoError(t, err)
	require.NoError(t, e.lists.RemoveItem(e.ctx, bob, l.ID, dune))

	items, err := e.lists.Items(e.ctx, nil, l.ID)
	require.NoError(t, err)
	require.Len(t, items.Items, 1)
	assert.Equal(t, arrival, items.Items[0].ItemID)
}
