package pagination

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamPage   = "page"
	ParamLimit  = "limit"
	ParamSearch = "q"
)

// Defaults applied when a raw value is missing or unusable.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	// maxValue caps page and limit so offsets never overflow.
	maxValue = math.MaxInt32
)

// Request is the normalized form of the raw page/limit query values.
type Request struct {
	// Paginated is false when neither page nor limit was supplied.
	Paginated bool
	// Canonical is false when the raw values differ from Page/Limit
	// and the caller must redirect.
	Canonical bool
	Page      int
	Limit     int
}

// Normalize computes canonical page and limit from the query.
// Raw values are coerced to the absolute value of their integer part;
// missing, zero or malformed values collapse to DefaultPage and DefaultLimit.
func Normalize(query url.Values) Request {
	rawPage, hasPage := lookup(query, ParamPage)
	rawLimit, hasLimit := lookup(query, ParamLimit)
	if !hasPage && !hasLimit {
		return Request{Canonical: true}
	}

	page, pageOK := coerce(rawPage, hasPage, DefaultPage)
	limit, limitOK := coerce(rawLimit, hasLimit, DefaultLimit)

	return Request{
		Paginated: true,
		Canonical: pageOK && limitOK,
		Page:      page,
		Limit:     limit,
	}
}

// NeedsRedirect reports whether the caller must redirect to RedirectURL.
func (r Request) NeedsRedirect() bool {
	return r.Paginated && !r.Canonical
}

// RedirectURL returns root with canonical page and limit appended.
// root is a pagination root as returned by Root.
func (r Request) RedirectURL(root string) string {
	return PageURL(root, r.Page, r.Limit)
}

// Window is the slice of rows to fetch. The zero Window fetches everything.
type Window struct {
	Limit  int
	Offset int
}

// NoWindow fetches the full result set.
var NoWindow = Window{}

// Bounded reports whether the window limits the result set.
func (w Window) Bounded() bool {
	return w.Limit > 0
}

// State is the pagination metadata derived for one request.
type State struct {
	Page       int
	Limit      int
	Offset     int
	TotalPages int
}

// NewState derives offset and total page count from a row count.
// page and limit must be canonical.
func NewState(page, limit, totalRows int) State {
	totalPages := 0
	if totalRows > 0 {
		totalPages = (totalRows + limit - 1) / limit
	}
	return State{
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		TotalPages: totalPages,
	}
}

// Window returns the rows window of the current page.
func (s State) Window() Window {
	return Window{Limit: s.Limit, Offset: s.Offset}
}

// Payload returns the view data describing the current page.
func (s State) Payload(root string) map[string]any {
	return map[string]any{
		"paginationRoot": root,
		"page":           s.Page,
		"limit":          s.Limit,
		"totalPages":     s.TotalPages,
	}
}

// Root returns the pagination root of a route: the route followed by the
// active search token, ready for page parameters to be appended.
//
//	Root("/books", url.Values{})               // "/books?"
//	Root("/books", url.Values{"q": {"tolkien"}}) // "/books?q=tolkien&"
func Root(route string, query url.Values) string {
	var b strings.Builder
	b.WriteString(route)
	b.WriteByte('?')
	if token, ok := lookup(query, ParamSearch); ok {
		b.WriteString(ParamSearch)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(token))
		b.WriteByte('&')
	}
	return b.String()
}

// PageURL appends page and limit to a pagination root.
func PageURL(root string, page, limit int) string {
	return root + ParamPage + "=" + strconv.Itoa(page) + "&" + ParamLimit + "=" + strconv.Itoa(limit)
}

// CountFunc counts the rows of a listing.
type CountFunc func(ctx context.Context) (int, error)

// FetchFunc loads the rows of a listing within the window.
type FetchFunc[T any] func(ctx context.Context, w Window) ([]T, error)

// Load runs the caller-supplied count and fetch operations for the request.
// Unpaginated requests fetch the full result set and return a nil State.
// The request must not need a redirect.
func Load[T any](ctx context.Context, req Request, count CountFunc, fetch FetchFunc[T]) ([]T, *State, error) {
	if !req.Paginated {
		rows, err := fetch(ctx, NoWindow)
		if err != nil {
			return nil, nil, err
		}
		return rows, nil, nil
	}

	total, err := count(ctx)
	if err != nil {
		return nil, nil, err
	}

	state := NewState(req.Page, req.Limit, total)
	rows, err := fetch(ctx, state.Window())
	if err != nil {
		return nil, nil, err
	}
	return rows, &state, nil
}

func lookup(query url.Values, key string) (string, bool) {
	values, ok := query[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// coerce returns the canonical value of raw and whether raw already was canonical.
func coerce(raw string, present bool, def int) (int, bool) {
	if !present {
		return def, false
	}

	canonical := def
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsNaN(f) {
		f = math.Abs(math.Trunc(f))
		if f >= 1 && f <= maxValue {
			canonical = int(f)
		}
	}

	strict, err := strconv.Atoi(raw)
	return canonical, err == nil && strict == canonical
}
