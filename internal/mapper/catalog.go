// Package mapper projects stored entities into response views.
package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

// DescriptionLimit is the rune count kept by summary views.
const DescriptionLimit = 200

// Truncate cuts s to limit runes and appends "..." when something was removed.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// Enrichment is the per-item data computed outside the catalog table.
type Enrichment struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	IsBookmarked  bool    `json:"isBookmarked"`
	IsReviewed    bool    `json:"isReviewed"`
}

// Item is the summary view of a catalog entity: every stored field plus the
// enrichment, flattened into one JSON object.
type Item[T any] struct {
	Entity T
	Enrichment
}

func (i Item[T]) MarshalJSON() ([]byte, error) {
	fields, err := objectFields(i.Entity)
	if err != nil {
		return nil, err
	}
	addEnrichment(fields, i.Enrichment)
	return json.Marshal(fields)
}

// ToItem copies entity and truncates its description.
func ToItem[T any, PT interface {
	*T
	domain.CatalogEntity
}](entity T, e Enrichment) Item[T] {
	PT(&entity).SetDescription(Truncate(PT(&entity).GetDescription(), DescriptionLimit))
	return Item[T]{Entity: entity, Enrichment: e}
}

// Page is the list response. Items is null when the query had nothing to
// relate to, and an empty array when a plain list matched nothing.
type Page[T any] struct {
	Plural string
	Items  []Item[T]
	Count  int64
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		p.Plural: p.Items,
		"count":  p.Count,
	})
}

type GenreSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ActorSummary struct {
	ID       int    `json:"id"`
	Fullname string `json:"fullname"`
	PhotoSrc string `json:"photoSrc"`
}

type CrewSummary struct {
	ID       int    `json:"id"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
	PhotoSrc string `json:"photoSrc"`
}

// Detail is the single-item view. Relations is set for movies and series,
// Reviews for every reviewable kind.
type Detail[T any] struct {
	Entity T
	Enrichment
	Relations *domain.Relations
	Reviews   []ReviewView
}

func (d Detail[T]) MarshalJSON() ([]byte, error) {
	fields, err := objectFields(d.Entity)
	if err != nil {
		return nil, err
	}
	addEnrichment(fields, d.Enrichment)

	if d.Relations != nil {
		if err := setField(fields, "genres", genreSummaries(d.Relations.Genres)); err != nil {
			return nil, err
		}
		if err := setField(fields, "cast", actorSummaries(d.Relations.Cast)); err != nil {
			return nil, err
		}
		if err := setField(fields, "crew", crewSummaries(d.Relations.Crew)); err != nil {
			return nil, err
		}
	}
	if d.Reviews != nil {
		if err := setField(fields, "reviews", d.Reviews); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

func genreSummaries(genres []domain.Genre) []GenreSummary {
	out := make([]GenreSummary, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreSummary{ID: g.ID, Name: g.Name})
	}
	return out
}

func actorSummaries(actors []domain.Actor) []ActorSummary {
	out := make([]ActorSummary, 0, len(actors))
	for _, a := range actors {
		out = append(out, ActorSummary{ID: a.ID, Fullname: a.Fullname, PhotoSrc: a.PhotoSrc})
	}
	return out
}

func crewSummaries(crew []domain.Crew) []CrewSummary {
	out := make([]CrewSummary, 0, len(crew))
	for _, c := range crew {
		out = append(out, CrewSummary{ID: c.ID, Fullname: c.Fullname, Role: c.Role, PhotoSrc: c.PhotoSrc})
	}
	return out
}

func objectFields(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("entity is not a JSON object: %w", err)
	}
	return fields, nil
}

func setField(fields map[string]json.RawMessage, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fields[key] = raw
	return nil
}

func addEnrichment(fields map[string]json.RawMessage, e Enrichment) {
	// Marshalling these four scalar fields cannot fail.
	_ = setField(fields, "averageRating", e.AverageRating)
	_ = setField(fields, "totalReviews", e.TotalReviews)
	_ = setField(fields, "isBookmarked", e.IsBookmarked)
	_ = setField(fields, "isReviewed", e.IsReviewed)
}
