// Package books serves the catalog pages: listings with search and
// pagination, the new book form and the book detail with its loan history.
//
//	r.Mount(books.Path, books.New(svc, kit).Handle())
package books
