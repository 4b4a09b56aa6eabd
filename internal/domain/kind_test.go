package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"movie", KindMovie},
		{"Movies", KindMovie},
		{"series", KindSerie},
		{"serie", KindSerie},
		{" crew ", KindCrew},
		{"genres", KindGenre},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_Invalid(t *testing.T) {
	_, err := ParseKind("podcast")
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestParseReviewableKind_RejectsGenre(t *testing.T) {
	_, err := ParseReviewableKind("genre")
	assert.True(t, apperrors.IsBadRequest(err))

	k, err := ParseReviewableKind("episodes")
	require.NoError(t, err)
	assert.Equal(t, KindEpisode, k)
}

func TestKindTables(t *testing.T) {
	assert.Equal(t, "movies", KindMovie.Table())
	assert.Equal(t, "movie_reviews", KindMovie.ReviewTable())
	assert.Equal(t, "user_serie_favorites", KindSerie.FavoriteTable())
	assert.Equal(t, "upvote_actor_reviews", KindActor.VoteTable(true))
	assert.Equal(t, "downvote_actor_reviews", KindActor.VoteTable(false))
	assert.Equal(t, "list_crew", KindCrew.ListItemTable())
	assert.Equal(t, "fullname", KindCrew.NameColumn())
	assert.Equal(t, "name", KindGenre.NameColumn())
	assert.True(t, KindSerie.HasGenres())
	assert.False(t, KindSeason.HasGenres())
}
