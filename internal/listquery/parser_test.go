package listquery

import (
	"net/url"
	"testing"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieSpec() Spec {
	return Spec{
		SearchParam:    "title",
		SearchColumn:   "title",
		DefaultSort:    "id",
		DefaultPerPage: 12,
		SortFields:     map[string]string{"id": "id", "title": "title", "ratingImdb": "rating_imdb"},
		FilterFields: map[string]Field{
			"title":      {Column: "title"},
			"ratingImdb": {Column: "rating_imdb", Numeric: true, Min: Bound(0), Max: Bound(10)},
		},
	}
}

func TestFromValues_Defaults(t *testing.T) {
	q, err := FromValues(url.Values{}, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.PerPage)
	assert.Empty(t, q.Search)
}

func TestFromValues_RejectsBadPagination(t *testing.T) {
	for _, raw := range []string{"page=0", "page=abc", "perPage=-1", "perPage=x"} {
		v, _ := url.ParseQuery(raw)
		_, err := FromValues(v, movieSpec())
		assert.True(t, apperrors.IsBadRequest(err), raw)
	}
}

func TestFromValues_CapsPerPage(t *testing.T) {
	v := url.Values{"perPage": {"500"}}
	q, err := FromValues(v, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, q.PerPage)
}

func TestFromValues_RejectsBadDirection(t *testing.T) {
	_, err := FromValues(url.Values{"ascOrDesc": {"sideways"}}, movieSpec())
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestParse_SearchAndPagination(t *testing.T) {
	v := url.Values{"title": {"DuNe"}, "page": {"3"}, "perPage": {"5"}}
	q, err := FromValues(v, movieSpec())
	require.NoError(t, err)

	p, err := Parse(q, movieSpec())
	require.NoError(t, err)

	assert.Equal(t, 10, p.Skip)
	assert.Equal(t, 5, p.Take)
	require.Len(t, p.Filters, 1)
	assert.Equal(t, Predicate{Column: "title", Op: OpContains, Value: "dune"}, p.Filters[0])
	assert.Equal(t, OrderBy{Column: "id"}, p.OrderBy)
}

func TestParse_SortWhitelist(t *testing.T) {
	p, err := Parse(Query{Page: 1, PerPage: 12, SortBy: "ratingImdb", AscOrDesc: "desc"}, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, OrderBy{Column: "rating_imdb", Desc: true}, p.OrderBy)

	_, err = Parse(Query{Page: 1, PerPage: 12, SortBy: "password"}, movieSpec())
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestParse_FilterOperators(t *testing.T) {
	cases := []struct {
		op   string
		want Operator
	}{
		{"contains", OpContains},
		{">", OpGreater},
		{"<", OpLess},
		{"", OpEquals},
		{"whatever", OpEquals},
	}
	for _, tc := range cases {
		q := Query{Page: 1, PerPage: 12, FilterName: "ratingImdb", FilterOperator: tc.op, FilterValue: "7.5"}
		p, err := Parse(q, movieSpec())
		require.NoError(t, err, tc.op)
		require.Len(t, p.Filters, 1)
		assert.Equal(t, tc.want, p.Filters[0].Op, tc.op)
		assert.Equal(t, "rating_imdb", p.Filters[0].Column)
	}
}

func TestParse_NumericFilterValidation(t *testing.T) {
	q := Query{Page: 1, PerPage: 12, FilterName: "ratingImdb", FilterOperator: ">", FilterValue: "11"}
	_, err := Parse(q, movieSpec())
	assert.True(t, apperrors.IsBadRequest(err))

	q.FilterValue = "high"
	_, err = Parse(q, movieSpec())
	assert.True(t, apperrors.IsBadRequest(err))

	q.FilterValue = "8"
	p, err := Parse(q, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, 8.0, p.Filters[0].Value)
}

func TestParse_UnknownFilterField(t *testing.T) {
	_, err := Parse(Query{Page: 1, PerPage: 12, FilterName: "secret", FilterValue: "x"}, movieSpec())
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestParse_TextFilterIsLowerCased(t *testing.T) {
	q := Query{Page: 1, PerPage: 12, FilterName: "title", FilterOperator: "contains", FilterValue: "Ring"}
	p, err := Parse(q, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, "ring", p.Filters[0].Value)
}

func TestParsed_KeyIsStable(t *testing.T) {
	q := Query{Page: 2, PerPage: 12, Search: "dune", SortBy: "title"}
	a, err := Parse(q, movieSpec())
	require.NoError(t, err)
	b, err := Parse(q, movieSpec())
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())

	q.Page = 3
	c, err := Parse(q, movieSpec())
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage(url.Values{"page": {"2"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 20, p.Skip())
	assert.Equal(t, 20, p.Take())
}
