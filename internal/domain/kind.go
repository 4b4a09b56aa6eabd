package domain

import (
	"strings"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

// Kind selects which per-entity table a generic operation targets.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSerie   Kind = "serie"
	KindSeason  Kind = "season"
	KindEpisode Kind = "episode"
	KindActor   Kind = "actor"
	KindCrew    Kind = "crew"
	KindGenre   Kind = "genre"
)

type kindInfo struct {
	table      string
	plural     string
	nameColumn string
}

var kinds = map[Kind]kindInfo{
	KindMovie:   {table: "movies", plural: "movies", nameColumn: "title"},
	KindSerie:   {table: "series", plural: "series", nameColumn: "title"},
	KindSeason:  {table: "seasons", plural: "seasons", nameColumn: "title"},
	KindEpisode: {table: "episodes", plural: "episodes", nameColumn: "title"},
	KindActor:   {table: "actors", plural: "actors", nameColumn: "fullname"},
	KindCrew:    {table: "crew", plural: "crew", nameColumn: "fullname"},
	KindGenre:   {table: "genres", plural: "genres", nameColumn: "name"},
}

// CatalogKinds lists every catalog kind in a stable order.
var CatalogKinds = []Kind{KindMovie, KindSerie, KindSeason, KindEpisode, KindActor, KindCrew, KindGenre}

// ReviewableKinds lists the kinds that carry reviews, votes, favorites and list items.
var ReviewableKinds = []Kind{KindMovie, KindSerie, KindSeason, KindEpisode, KindActor, KindCrew}

// ParseKind accepts singular or plural names in any case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, info := range kinds {
		if s == string(k) || s == info.plural {
			return k, nil
		}
	}
	return "", apperrors.BadRequest("invalid item type")
}

// ParseReviewableKind is ParseKind restricted to ReviewableKinds.
func ParseReviewableKind(s string) (Kind, error) {
	k, err := ParseKind(s)
	if err != nil {
		return "", err
	}
	if !k.Reviewable() {
		return "", apperrors.BadRequest("invalid item type")
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) Reviewable() bool {
	return k.Valid() && k != KindGenre
}

// Table is the catalog table of the kind.
func (k Kind) Table() string { return kinds[k].table }

// Plural is the JSON key used by list responses.
func (k Kind) Plural() string { return kinds[k].plural }

// NameColumn is the lower-cased display column (title, fullname or name).
func (k Kind) NameColumn() string { return kinds[k].nameColumn }

func (k Kind) ReviewTable() string { return string(k) + "_reviews" }
func (k Kind) FavoriteTable() string { return "user_" + string(k) + "_favorites" }
func (k Kind) UpvoteTable() string { return "upvote_" + string(k) + "_reviews" }
func (k Kind) DownvoteTable() string { return "downvote_" + string(k) + "_reviews" }
func (k Kind) ListItemTable() string { return "list_" + k.Plural() }
func (k Kind) HasGenres() bool { return k == KindMovie || k == KindSerie }

// HasDateAired reports whether the kind carries a date_aired column.
func (k Kind) HasDateAired() bool {
	return k == KindMovie || k == KindSerie || k == KindSeason || k == KindEpisode
}

func (k Kind) String() string { return string(k) }
func (k Kind) VoteTable(up bool) string {
	if up {
		return k.UpvoteTable()
	}
	return k.DownvoteTable()
}
