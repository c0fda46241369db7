// Package patrons serves the patron pages: the searchable listing, the new
// patron form and the patron detail with its loan history.
package patrons
