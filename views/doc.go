// Package views renders the library pages from embedded html/template files
// and exposes them as templ components.
//
// View names mirror the template paths under templates/: "book/index" is
// templates/book/index.html. Every view defines "title" and "content" blocks
// that the layout places on the page. The partials directory holds blocks
// shared by every view; files starting with "_" are shared by the views of
// their directory only.
package views
