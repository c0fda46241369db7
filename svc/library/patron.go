package library

import (
	"net/url"
	"strconv"

	"github.com/dmitrymomot/library/pkg/validator"
)

// Patron is a library member.
type Patron struct {
	ID        int64
	FirstName string
	LastName  string
	Address   string
	Email     string
	LibraryID string
	ZipCode   int
}

func (p Patron) FullName() string {
	return p.FirstName + " " + p.LastName
}

type PatronInput struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Address   string `form:"address"`
	Email     string `form:"email"`
	LibraryID string `form:"library_id"`
	ZipCode   string `form:"zip_code"`
}

// Labels of patron fields, also used for uniqueness conflicts.
const (
	LabelEmail     = "Email"
	LabelLibraryID = "Library ID"
)

var patronLabels = map[string]string{
	"first_name": "First Name",
	"last_name":  "Last Name",
	"address":    "Address",
	"email":      LabelEmail,
	"library_id": LabelLibraryID,
	"zip_code":   "Zip Code",
}

func (in PatronInput) validate() error {
	return validate(patronLabels,
		required("first_name", in.FirstName),
		required("last_name", in.LastName),
		required("address", in.Address),
		required("email", in.Email),
		validator.When(trim(in.Email) != "", validator.ValidEmail("email", in.Email)),
		required("library_id", in.LibraryID),
		required("zip_code", in.ZipCode),
		optionalInteger("zip_code", in.ZipCode),
	)
}

func (in PatronInput) apply(p *Patron) {
	p.FirstName = trim(in.FirstName)
	p.LastName = trim(in.LastName)
	p.Address = trim(in.Address)
	p.Email = trim(in.Email)
	p.LibraryID = trim(in.LibraryID)
	p.ZipCode = atoi(in.ZipCode)
}

// UniqueMessage is the validation message of a uniqueness conflict on label.
func UniqueMessage(label string) string {
	return `"` + label + `" must be unique`
}

// PatronInputOf returns the form state of a persisted patron.
func PatronInputOf(p Patron) PatronInput {
	return PatronInput{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		Email:     p.Email,
		LibraryID: p.LibraryID,
		ZipCode:   strconv.Itoa(p.ZipCode),
	}
}

// Values returns the input as submitted form values.
func (in PatronInput) Values() url.Values {
	return url.Values{
		"first_name": {in.FirstName},
		"last_name":  {in.LastName},
		"address":    {in.Address},
		"email":      {in.Email},
		"library_id": {in.LibraryID},
		"zip_code":   {in.ZipCode},
	}
}
