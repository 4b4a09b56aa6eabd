// Package listquery turns list query strings into filter, sort and
// pagination instructions for the storage layer.
package listquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100

	ParamPage           = "page"
	ParamPerPage        = "perPage"
	ParamSortBy         = "sortBy"
	ParamAscOrDesc      = "ascOrDesc"
	ParamFilterName     = "filterNameString"
	ParamFilterOperator = "filterOperatorString"
	ParamFilterValue    = "filterValue"
)

// Query is the validated, coerced form of list query parameters.
type Query struct {
	Page           int
	PerPage        int
	Search         string
	SortBy         string
	AscOrDesc      string
	FilterName     string
	FilterOperator string
	FilterValue    string
}

// Page is a bare page/perPage pair for endpoints without filters.
type Page struct {
	Page    int
	PerPage int
}

func (p Page) Skip() int { return (p.Page - 1) * p.PerPage }
func (p Page) Take() int { return p.PerPage }

// ParsePage reads page and perPage, applying defaultPerPage when absent.
func ParsePage(values url.Values, defaultPerPage int) (Page, error) {
	if defaultPerPage <= 0 {
		defaultPerPage = DefaultPerPage
	}
	page, err := positiveInt(values.Get(ParamPage), DefaultPage, ParamPage)
	if err != nil {
		return Page{}, err
	}
	perPage, err := positiveInt(values.Get(ParamPerPage), defaultPerPage, ParamPerPage)
	if err != nil {
		return Page{}, err
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}, nil
}

// FromValues binds the query string of a list endpoint described by spec.
func FromValues(values url.Values, spec Spec) (Query, error) {
	p, err := ParsePage(values, spec.DefaultPerPage)
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Page:           p.Page,
		PerPage:        p.PerPage,
		SortBy:         strings.TrimSpace(values.Get(ParamSortBy)),
		AscOrDesc:      strings.ToLower(strings.TrimSpace(values.Get(ParamAscOrDesc))),
		FilterName:     strings.TrimSpace(values.Get(ParamFilterName)),
		FilterOperator: strings.TrimSpace(values.Get(ParamFilterOperator)),
		FilterValue:    strings.TrimSpace(values.Get(ParamFilterValue)),
	}
	if spec.SearchParam != "" {
		q.Search = strings.TrimSpace(values.Get(spec.SearchParam))
	}

	if q.AscOrDesc != "" && q.AscOrDesc != "asc" && q.AscOrDesc != "desc" {
		return Query{}, apperrors.BadRequest("ascOrDesc must be asc or desc")
	}
	return q, nil
}

func positiveInt(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}
