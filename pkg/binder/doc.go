// Package binder maps HTTP request data onto tagged struct fields.
//
//	type BookInput struct {
//		ID     int    `path:"id"`
//		Title  string `form:"title"`
//		Author string `form:"author"`
//	}
//
// Form inputs of the library are string typed on purpose: a value that does
// not parse as a number or date is a validation message, not a bind failure,
// so the submission can always be re-rendered.
package binder
