package domain

import (
	"strings"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

// CatalogEntity is implemented by the pointer of every catalog item type.
type CatalogEntity interface {
	GetID() int
	// Normalize trims and lower-cases the display name before it is written.
	Normalize()
	GetDescription() string
	SetDescription(string)
	// GetName returns the title, fullname or name.
	GetName() string
	// ResetIdentity clears the fields owned by the database.
	ResetIdentity()
	Validate() error
}

// Child is implemented by kinds that belong to a parent item.
type Child interface {
	ParentRef() (Kind, int)
}

func validateImdb(rating float64) error {
	if rating < 0 || rating > 10 {
		return apperrors.BadRequest("ratingImdb must be between 0 and 10")
	}
	return nil
}

// Movie corresponds to the movies table.
type Movie struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	PhotoSrc     string    `json:"photoSrc"`
	PhotoSrcProd string    `json:"photoSrcProd"`
	TrailerSrc   string    `json:"trailerSrc"`
	RatingImdb   float64   `json:"ratingImdb"`
	ReleaseYear  int       `json:"releaseYear"`
	Duration     int       `json:"duration"`
	DateAired    time.Time `json:"dateAired"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Movie) TableName() string { return "movies" }
func (m *Movie) GetID() int { return m.ID }
func (m *Movie) Normalize() { m.Title = strings.ToLower(strings.TrimSpace(m.Title)) }
func (m *Movie) GetDescription() string { return m.Description }
func (m *Movie) SetDescription(d string) { m.Description = d }
func (m *Movie) GetName() string { return m.Title }
func (m *Movie) ResetIdentity() { m.ID, m.CreatedAt, m.UpdatedAt = 0, time.Time{}, time.Time{} }
func (m *Movie) Validate() error { return validateImdb(m.RatingImdb) }

// Serie corresponds to the series table.
type Serie struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	PhotoSrc     string    `json:"photoSrc"`
	PhotoSrcProd string    `json:"photoSrcProd"`
	TrailerSrc   string    `json:"trailerSrc"`
	RatingImdb   float64   `json:"ratingImdb"`
	ReleaseYear  int       `json:"releaseYear"`
	TotalSeasons int       `json:"totalSeasons"`
	DateAired    time.Time `json:"dateAired"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Serie) TableName() string { return "series" }
func (s *Serie) GetID() int { return s.ID }
func (s *Serie) Normalize() { s.Title = strings.ToLower(strings.TrimSpace(s.Title)) }
func (s *Serie) GetDescription() string { return s.Description }
func (s *Serie) SetDescription(d string) { s.Description = d }
func (s *Serie) GetName() string { return s.Title }
func (s *Serie) ResetIdentity() { s.ID, s.CreatedAt, s.UpdatedAt = 0, time.Time{}, time.Time{} }
func (s *Serie) Validate() error { return validateImdb(s.RatingImdb) }

// Season belongs to one serie.
type Season struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	PhotoSrc    string    `json:"photoSrc"`
	TrailerSrc  string    `json:"trailerSrc"`
	RatingImdb  float64   `json:"ratingImdb"`
	DateAired   time.Time `json:"dateAired"`
	SerieID     int       `json:"serieId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Season) TableName() string { return "seasons" }
func (s *Season) GetID() int { return s.ID }
func (s *Season) Normalize() { s.Title = strings.ToLower(strings.TrimSpace(s.Title)) }
func (s *Season) GetDescription() string { return s.Description }
func (s *Season) SetDescription(d string) { s.Description = d }
func (s *Season) GetName() string { return s.Title }
func (s *Season) ResetIdentity() { s.ID, s.CreatedAt, s.UpdatedAt = 0, time.Time{}, time.Time{} }
func (s *Season) Validate() error { return validateImdb(s.RatingImdb) }
func (s *Season) ParentRef() (Kind, int) { return KindSerie, s.SerieID }

// Episode belongs to one season.
type Episode struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	PhotoSrc    string    `json:"photoSrc"`
	TrailerSrc  string    `json:"trailerSrc"`
	Duration    int       `json:"duration"`
	RatingImdb  float64   `json:"ratingImdb"`
	DateAired   time.Time `json:"dateAired"`
	SeasonID    int       `json:"seasonId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Episode) TableName() string { return "episodes" }
func (e *Episode) GetID() int { return e.ID }
func (e *Episode) Normalize() { e.Title = strings.ToLower(strings.TrimSpace(e.Title)) }
func (e *Episode) GetDescription() string { return e.Description }
func (e *Episode) SetDescription(d string) { e.Description = d }
func (e *Episode) GetName() string { return e.Title }
func (e *Episode) ResetIdentity() { e.ID, e.CreatedAt, e.UpdatedAt = 0, time.Time{}, time.Time{} }
func (e *Episode) Validate() error { return validateImdb(e.RatingImdb) }
func (e *Episode) ParentRef() (Kind, int) { return KindSeason, e.SeasonID }

type Actor struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	Fullname    string     `json:"fullname" gorm:"not null"`
	Description string     `json:"description"`
	PhotoSrc    string     `json:"photoSrc"`
	Debut       int        `json:"debut"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Actor) TableName() string { return "actors" }
func (a *Actor) GetID() int { return a.ID }
func (a *Actor) Normalize() { a.Fullname = strings.ToLower(strings.TrimSpace(a.Fullname)) }
func (a *Actor) GetDescription() string { return a.Description }
func (a *Actor) SetDescription(d string) { a.Description = d }
func (a *Actor) GetName() string { return a.Fullname }
func (a *Actor) ResetIdentity() { a.ID, a.CreatedAt, a.UpdatedAt = 0, time.Time{}, time.Time{} }
func (a *Actor) Validate() error { return nil }

type Crew struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	Fullname    string     `json:"fullname" gorm:"not null"`
	Description string     `json:"description"`
	PhotoSrc    string     `json:"photoSrc"`
	Role        string     `json:"role"`
	Debut       int        `json:"debut"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Crew) TableName() string { return "crew" }
func (c *Crew) GetID() int { return c.ID }
func (c *Crew) Normalize() { c.Fullname = strings.ToLower(strings.TrimSpace(c.Fullname)) }
func (c *Crew) GetDescription() string { return c.Description }
func (c *Crew) SetDescription(d string) { c.Description = d }
func (c *Crew) GetName() string { return c.Fullname }
func (c *Crew) ResetIdentity() { c.ID, c.CreatedAt, c.UpdatedAt = 0, time.Time{}, time.Time{} }
func (c *Crew) Validate() error { return nil }

type Genre struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Genre) TableName() string { return "genres" }
func (g *Genre) GetID() int { return g.ID }
func (g *Genre) Normalize() { g.Name = strings.ToLower(strings.TrimSpace(g.Name)) }
func (g *Genre) GetDescription() string { return g.Description }
func (g *Genre) SetDescription(d string) { g.Description = d }
func (g *Genre) GetName() string { return g.Name }
func (g *Genre) ResetIdentity() { g.ID, g.CreatedAt, g.UpdatedAt = 0, time.Time{}, time.Time{} }
func (g *Genre) Validate() error { return nil }

// Links carries the many-to-many associations of a movie or serie.
// A nil slice leaves the stored association untouched on update.
type Links struct {
	GenreIDs []int `json:"genreIds"`
	ActorIDs []int `json:"actorIds"`
	CrewIDs  []int `json:"crewIds"`
}

// LinkTable describes one join table with a stable id column.
type LinkTable struct {
	Table         string
	ItemColumn    string
	RelatedColumn string
	Related       Kind
}

// LinkTables returns the join tables of a kind: genres first, then cast, then crew.
func (k Kind) LinkTables() []LinkTable {
	if !k.HasGenres() {
		return nil
	}
	item := string(k) + "_id"
	return []LinkTable{
		{Table: string(k) + "_genres", ItemColumn: item, RelatedColumn: "genre_id", Related: KindGenre},
		{Table: string(k) + "_cast", ItemColumn: item, RelatedColumn: "actor_id", Related: KindActor},
		{Table: string(k) + "_crew", ItemColumn: item, RelatedColumn: "crew_id", Related: KindCrew},
	}
}

// IDs returns the slice of ids targeting a given join table, by related kind.
func (l Links) IDs(related Kind) []int {
	switch related {
	case KindGenre:
		return l.GenreIDs
	case KindActor:
		return l.ActorIDs
	case KindCrew:
		return l.CrewIDs
	}
	return nil
}

// Relations are the summaries attached to a movie or serie detail view.
type Relations struct {
	Genres []Genre
	Cast   []Actor
	Crew   []Crew
}
