// Package pagination normalizes page/limit query parameters and derives
// offset and page counts for listings.
//
// Absence of both parameters means "no pagination": the caller lists every
// row and attaches no metadata. When either is present, Normalize computes
// canonical positive values; a request whose raw values differ from the
// canonical ones must be redirected:
//
//	req := pagination.Normalize(r.URL.Query())
//	root := pagination.Root(r.URL.Path, r.URL.Query())
//	if req.NeedsRedirect() {
//		return handler.Redirect(req.RedirectURL(root)), nil
//	}
//	rows, state, err := pagination.Load(ctx, req, count, fetch)
//
// Nothing is cached between requests.
package pagination
