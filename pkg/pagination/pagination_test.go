package pagination_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/pkg/pagination"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		paginated bool
		canonical bool
		page      int
		limit     int
	}{
		{name: "absent", query: "", paginated: false, canonical: true},
		{name: "search only", query: "q=tolkien", paginated: false, canonical: true},
		{name: "canonical", query: "page=2&limit=5", paginated: true, canonical: true, page: 2, limit: 5},
		{name: "leading zero parses strictly", query: "page=02&limit=5", paginated: true, canonical: true, page: 2, limit: 5},
		{name: "zero page", query: "page=0&limit=10", paginated: true, page: 1, limit: 10},
		{name: "negative page keeps absolute value", query: "page=-3&limit=10", paginated: true, page: 3, limit: 10},
		{name: "negative limit keeps absolute value", query: "page=1&limit=-20", paginated: true, page: 1, limit: 20},
		{name: "fraction truncates", query: "page=2.5&limit=10", paginated: true, page: 2, limit: 10},
		{name: "garbage page", query: "page=abc&limit=7", paginated: true, page: 1, limit: 7},
		{name: "garbage limit", query: "page=4&limit=lots", paginated: true, page: 4, limit: 10},
		{name: "empty values", query: "page=&limit=", paginated: true, page: 1, limit: 10},
		{name: "page without limit", query: "page=3", paginated: true, page: 3, limit: 10},
		{name: "limit without page", query: "limit=25", paginated: true, page: 1, limit: 25},
		{name: "overflow", query: "page=99999999999999&limit=5", paginated: true, page: 1, limit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			req := pagination.Normalize(q)
			assert.Equal(t, tt.paginated, req.Paginated)
			assert.Equal(t, tt.canonical, req.Canonical)
			assert.Equal(t, tt.paginated && !tt.canonical, req.NeedsRedirect())
			if tt.paginated {
				assert.Equal(t, tt.page, req.Page)
				assert.Equal(t, tt.limit, req.Limit)
			}
		})
	}
}

func TestRedirectURL(t *testing.T) {
	t.Parallel()

	t.Run("zero page", func(t *testing.T) {
		q := url.Values{"page": {"0"}, "limit": {"10"}}
		req := pagination.Normalize(q)
		assert.Equal(t, "/books?page=1&limit=10", req.RedirectURL(pagination.Root("/books", q)))
	})

	t.Run("search token precedes pagination", func(t *testing.T) {
		q := url.Values{"page": {"-2"}, "q": {"the hobbit"}}
		req := pagination.Normalize(q)
		assert.Equal(t, "/books?q=the+hobbit&page=2&limit=10", req.RedirectURL(pagination.Root("/books", q)))
	})
}

func TestRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/loans?", pagination.Root("/loans", url.Values{}))
	assert.Equal(t, "/loans?q=&", pagination.Root("/loans", url.Values{"q": {""}}))
	assert.Equal(t, "/loans?q=a%26b&", pagination.Root("/loans", url.Values{"q": {"a&b"}}))
	assert.Equal(t, "/loans?page=3&limit=20", pagination.PageURL("/loans?", 3, 20))
}

func TestNewState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		page, limit, total int
		offset, totalPages int
	}{
		{name: "first page", page: 1, limit: 10, total: 95, offset: 0, totalPages: 10},
		{name: "exact multiple", page: 3, limit: 5, total: 15, offset: 10, totalPages: 3},
		{name: "limit above total", page: 1, limit: 50, total: 7, offset: 0, totalPages: 1},
		{name: "empty", page: 1, limit: 10, total: 0, offset: 0, totalPages: 0},
		{name: "past the end", page: 4, limit: 10, total: 12, offset: 30, totalPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := pagination.NewState(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.offset, s.Offset)
			assert.Equal(t, tt.totalPages, s.TotalPages)
			assert.Equal(t, pagination.Window{Limit: tt.limit, Offset: tt.offset}, s.Window())
		})
	}
}

func TestStatePayload(t *testing.T) {
	t.Parallel()

	s := pagination.NewState(2, 10, 31)
	assert.Equal(t, map[string]any{
		"paginationRoot": "/books?",
		"page":           2,
		"limit":          10,
		"totalPages":     4,
	}, s.Payload("/books?"))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	rows := []string{"a", "b", "c", "d", "e"}
	count := func(context.Context) (int, error) { return len(rows), nil }
	fetch := func(_ context.Context, w pagination.Window) ([]string, error) {
		if !w.Bounded() {
			return rows, nil
		}
		end := min(w.Offset+w.Limit, len(rows))
		if w.Offset >= end {
			return nil, nil
		}
		return rows[w.Offset:end], nil
	}

	t.Run("unpaginated", func(t *testing.T) {
		got, state, err := pagination.Load(context.Background(), pagination.Request{Canonical: true}, count, fetch)
		require.NoError(t, err)
		assert.Nil(t, state)
		assert.Equal(t, rows, got)
	})

	t.Run("second page", func(t *testing.T) {
		req := pagination.Normalize(url.Values{"page": {"2"}, "limit": {"2"}})
		got, state, err := pagination.Load(context.Background(), req, count, fetch)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, []string{"c", "d"}, got)
		assert.Equal(t, 3, state.TotalPages)
	})

	t.Run("count error", func(t *testing.T) {
		boom := errors.New("boom")
		req := pagination.Normalize(url.Values{"page": {"1"}})
		_, _, err := pagination.Load(context.Background(), req,
			func(context.Context) (int, error) { return 0, boom }, fetch)
		assert.ErrorIs(t, err, boom)
	})
}
