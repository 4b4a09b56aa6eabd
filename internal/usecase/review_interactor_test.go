package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

func rating(v float64) *float64 { return &v }

func TestReview_CreateRules(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	dune := e.movie(t, alice, "dune", domain.Links{})

	_, err := e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Content: "x"})
	assert.True(t, apperrors.IsBadRequest(err))

	_, err = e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(5.5)})
	assert.True(t, apperrors.IsBadRequest(err))

	_, err = e.reviews.Create(e.ctx, alice, domain.KindMovie, 404, usecase.ReviewInput{Rating: rating(3)})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.reviews.Create(e.ctx, nil, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(3)})
	assert.True(t, apperrors.IsUnauthorized(err))

	view, err := e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Content: " good ", Rating: rating(3)})
	require.NoError(t, err)
	assert.Equal(t, "good", view.Content)
	assert.Equal(t, "alice", view.User.UserName)
	assert.Nil(t, view.UpdatedAt)

	_, err = e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(4)})
	assert.True(t, apperrors.IsConflict(err))
}

func TestReview_UpdateDeleteAndList(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	dune := e.movie(t, alice, "dune", domain.Links{})

	_, err := e.reviews.Update(e.ctx, bob, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(1)})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.reviews.Create(e.ctx, bob, domain.KindMovie, dune, usecase.ReviewInput{Content: "meh", Rating: rating(2)})
	require.NoError(t, err)

	view, err := e.reviews.Update(e.ctx, bob, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(4.5)})
	require.NoError(t, err)
	assert.Equal(t, 4.5, view.Rating)
	assert.Equal(t, "meh", view.Content)
	assert.NotNil(t, view.UpdatedAt)

	page, err := e.reviews.ListByItem(e.ctx, nil, domain.KindMovie, dune, listquery.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Count)

	page, err = e.reviews.ListByUser(e.ctx, nil, domain.KindMovie, bob.UserID, listquery.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Count)

	_, err = e.reviews.ListByUser(e.ctx, nil, domain.KindMovie, 404, listquery.Page{Page: 1, PerPage: 10})
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, e.reviews.Delete(e.ctx, bob, domain.KindMovie, dune))
	assert.True(t, apperrors.IsNotFound(e.reviews.Delete(e.ctx, bob, domain.KindMovie, dune)))
}

func TestReview_Votes(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	dune := e.movie(t, alice, "dune", domain.Links{})
	other := e.movie(t, alice, "arrival", domain.Links{})

	view, err := e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(5)})
	require.NoError(t, err)

	require.NoError(t, e.reviews.Vote(e.ctx, bob, domain.KindMovie, dune, view.ID, true))
	assert.True(t, apperrors.IsConflict(e.reviews.Vote(e.ctx, bob, domain.KindMovie, dune, view.ID, true)))
	// up and down votes are independent
	require.NoError(t, e.reviews.Vote(e.ctx, bob, domain.KindMovie, dune, view.ID, false))

	assert.True(t, apperrors.IsNotFound(e.reviews.Vote(e.ctx, bob, domain.KindMovie, other, view.ID, true)))
	assert.True(t, apperrors.IsNotFound(e.reviews.Vote(e.ctx, bob, domain.KindMovie, dune, 404, true)))

	page, err := e.reviews.ListByItem(e.ctx, bob, domain.KindMovie, dune, listquery.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, 1, page.Reviews[0].Upvotes)
	assert.Equal(t, 1, page.Reviews[0].Downvotes)
	assert.True(t, page.Reviews[0].IsUpvoted)
	assert.True(t, page.Reviews[0].IsDownvoted)

	require.NoError(t, e.reviews.Unvote(e.ctx, bob, domain.KindMovie, dune, view.ID, true))
	assert.True(t, apperrors.IsNotFound(e.reviews.Unvote(e.ctx, bob, domain.KindMovie, dune, view.ID, true)))

	page, err = e.reviews.ListByItem(e.ctx, alice, domain.KindMovie, dune, listquery.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Reviews[0].Upvotes)
	assert.False(t, page.Reviews[0].IsDownvoted)
}

func TestReview_InvalidatesCache(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	dune := e.movie(t, alice, "dune", domain.Links{})

	var before int64
	_, err := e.cache.GetJSON(e.ctx, "catalog:movie:version", &before)
	require.NoError(t, err)

	_, err = e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Rating: rating(3)})
	require.NoError(t, err)

	var after int64
	_, err = e.cache.GetJSON(e.ctx, "catalog:movie:version", &after)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestReview_ListsShortenContent(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	dune := e.movie(t, alice, "dune", domain.Links{})
	long := strings.Repeat("spice ", 60)

	view, err := e.reviews.Create(e.ctx, alice, domain.KindMovie, dune, usecase.ReviewInput{Content: long, Rating: rating(4)})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), view.Content)

	page, err := e.reviews.ListByItem(e.ctx, nil, domain.KindMovie, dune, listquery.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Len(t, []rune(page.Reviews[0].Content), 203)
	assert.True(t, strings.HasSuffix(page.Reviews[0].Content, "..."))

	detail, err := e.movies.Get(e.ctx, nil, dune)
	require.NoError(t, err)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, page.Reviews[0].Content, detail.Reviews[0].Content)
}

func TestFavorite_Rules(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	dune := e.movie(t, alice, "dune", domain.Links{})
	drama := e.genre(t, alice, "drama")

	assert.True(t, apperrors.IsNotFound(e.favorite.Add(e.ctx, alice, domain.KindMovie, 404)))
	require.NoError(t, e.favorite.Add(e.ctx, alice, domain.KindMovie, dune))
	assert.True(t, apperrors.IsConflict(e.favorite.Add(e.ctx, alice, domain.KindMovie, dune)))
	assert.True(t, apperrors.IsBadRequest(e.favorite.Add(e.ctx, alice, domain.KindGenre, drama)))
	assert.True(t, apperrors.IsUnauthorized(e.favorite.Add(e.ctx, nil, domain.KindMovie, dune)))

	require.NoError(t, e.favorite.Remove(e.ctx, alice, domain.KindMovie, dune))
	assert.True(t, apperrors.IsNotFound(e.favorite.Remove(e.ctx, alice, domain.KindMovie, dune)))
}
