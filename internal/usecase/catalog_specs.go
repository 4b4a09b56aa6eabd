package usecase

import (
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
)

// LatestLimit is the size of every /latest response.
const LatestLimit = 6

var imdbRange = listquery.Field{
	Column:  "rating_imdb",
	Numeric: true,
	Min:     listquery.Bound(0),
	Max:     listquery.Bound(10),
}

func titledSpec(perPage int, extraSort map[string]string, extraFilter map[string]listquery.Field) listquery.Spec {
	sort := map[string]string{
		"id":         "id",
		"title":      "title",
		"ratingImdb": "rating_imdb",
		"dateAired":  "date_aired",
		"createdAt":  "created_at",
	}
	filter := map[string]listquery.Field{
		"title":       {Column: "title"},
		"description": {Column: "description"},
		"ratingImdb":  imdbRange,
	}
	for k, v := range extraSort {
		sort[k] = v
	}
	for k, v := range extraFilter {
		filter[k] = v
	}
	return listquery.Spec{
		SearchParam:    "title",
		SearchColumn:   "title",
		DefaultSort:    "id",
		DefaultPerPage: perPage,
		SortFields:     sort,
		FilterFields:   filter,
	}
}

func peopleSpec() listquery.Spec {
	return listquery.Spec{
		SearchParam:    "fullname",
		SearchColumn:   "fullname",
		DefaultSort:    "id",
		DefaultPerPage: listquery.DefaultPerPage,
		SortFields: map[string]string{
			"id":        "id",
			"fullname":  "fullname",
			"debut":     "debut",
			"createdAt": "created_at",
		},
	}
}

// CatalogSpec returns the list query whitelist of a kind.
func CatalogSpec(kind domain.Kind) listquery.Spec {
	switch kind {
	case domain.KindMovie:
		return titledSpec(12,
			map[string]string{"releaseYear": "release_year", "duration": "duration"},
			map[string]listquery.Field{
				"releaseYear": {Column: "release_year", Numeric: true},
				"duration":    {Column: "duration", Numeric: true},
			})
	case domain.KindSerie:
		return titledSpec(12,
			map[string]string{"releaseYear": "release_year", "totalSeasons": "total_seasons"},
			map[string]listquery.Field{
				"releaseYear":  {Column: "release_year", Numeric: true},
				"totalSeasons": {Column: "total_seasons", Numeric: true},
			})
	case domain.KindSeason:
		return titledSpec(listquery.DefaultPerPage,
			map[string]string{"serieId": "serie_id"},
			map[string]listquery.Field{"serieId": {Column: "serie_id", Numeric: true}})
	case domain.KindEpisode:
		s := titledSpec(listquery.DefaultPerPage, map[string]string{"seasonId": "season_id", "duration": "duration"}, nil)
		// The generic filter triple is only offered by movies, series and seasons.
		s.FilterFields = nil
		return s
	case domain.KindActor, domain.KindCrew:
		return peopleSpec()
	default:
		return listquery.Spec{
			SearchParam:    "name",
			SearchColumn:   "name",
			DefaultSort:    "id",
			DefaultPerPage: listquery.DefaultPerPage,
			SortFields:     map[string]string{"id": "id", "name": "name"},
		}
	}
}
