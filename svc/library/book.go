package library

import (
	"net/url"
	"strconv"
)

// Book is a catalog record.
type Book struct {
	ID             int64
	Title          string
	Author         string
	Genre          string
	FirstPublished *int
}

// BookInput is the submitted book form. Fields are strings so that any
// input can be redisplayed verbatim.
type BookInput struct {
	Title          string `form:"title"`
	Author         string `form:"author"`
	Genre          string `form:"genre"`
	FirstPublished string `form:"first_published"`
}

var bookLabels = map[string]string{
	"title":           "Title",
	"author":          "Author",
	"genre":           "Genre",
	"first_published": "First Published",
}

func (in BookInput) validate() error {
	return validate(bookLabels,
		required("title", in.Title),
		required("author", in.Author),
		optionalInteger("first_published", in.FirstPublished),
	)
}

// apply copies validated input onto b.
func (in BookInput) apply(b *Book) {
	b.Title = trim(in.Title)
	b.Author = trim(in.Author)
	b.Genre = trim(in.Genre)
	b.FirstPublished = nil
	if v := trim(in.FirstPublished); v != "" {
		year, _ := strconv.Atoi(v)
		b.FirstPublished = &year
	}
}

// BookInputOf returns the form state of a persisted book.
func BookInputOf(b Book) BookInput {
	in := BookInput{Title: b.Title, Author: b.Author, Genre: b.Genre}
	if b.FirstPublished != nil {
		in.FirstPublished = strconv.Itoa(*b.FirstPublished)
	}
	return in
}

// Values returns the input as submitted form values.
func (in BookInput) Values() url.Values {
	return url.Values{
		"title":           {in.Title},
		"author":          {in.Author},
		"genre":           {in.Genre},
		"first_published": {in.FirstPublished},
	}
}
