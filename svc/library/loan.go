package library

import (
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/library/pkg/validator"
)

// DefaultLoanPeriod is the time a book may be kept.
const DefaultLoanPeriod = 7 * 24 * time.Hour

// Loan binds a book to a patron. Book and Patron are set when the loan was
// loaded with its associations.
type Loan struct {
	ID         int64
	BookID     int64
	PatronID   int64
	LoanedOn   time.Time
	ReturnBy   time.Time
	ReturnedOn *time.Time

	Book   *Book
	Patron *Patron
}

// Outstanding reports whether the book has not been returned yet.
func (l Loan) Outstanding() bool {
	return l.ReturnedOn == nil
}

// Overdue reports whether the loan is outstanding past its return date.
func (l Loan) Overdue(now time.Time) bool {
	return l.Outstanding() && l.ReturnBy.Before(startOfDay(now))
}

type LoanInput struct {
	BookID   string `form:"book_id"`
	PatronID string `form:"patron_id"`
	LoanedOn string `form:"loaned_on"`
	ReturnBy string `form:"return_by"`
}

type ReturnInput struct {
	ReturnedOn string `form:"returned_on"`
}

// Labels of the loan references, also used when a referenced record is missing.
const (
	LabelBook   = "Book"
	LabelPatron = "Patron"
)

var loanLabels = map[string]string{
	"book_id":     LabelBook,
	"patron_id":   LabelPatron,
	"loaned_on":   "Loaned On",
	"return_by":   "Return By",
	"returned_on": "Returned On",
}

// MissingMessage is the validation message of a loan reference that does
// not resolve to a record.
func MissingMessage(label string) string {
	return `"` + label + `" does not exist`
}

// NewLoanDefaults returns the initial state of the new loan form:
// loaned today, due back in DefaultLoanPeriod.
func NewLoanDefaults(now time.Time) LoanInput {
	today := startOfDay(now)
	return LoanInput{
		LoanedOn: today.Format(validator.DateLayout),
		ReturnBy: today.Add(DefaultLoanPeriod).Format(validator.DateLayout),
	}
}

// NewReturnDefaults returns the initial state of the return form.
func NewReturnDefaults(now time.Time) ReturnInput {
	return ReturnInput{ReturnedOn: startOfDay(now).Format(validator.DateLayout)}
}

func (in LoanInput) rules() []validator.Rule {
	return []validator.Rule{
		required("book_id", in.BookID),
		required("patron_id", in.PatronID),
		required("loaned_on", in.LoanedOn),
		optionalDate("loaned_on", in.LoanedOn),
		required("return_by", in.ReturnBy),
		optionalDate("return_by", in.ReturnBy),
		validator.DateNotBefore("return_by", in.ReturnBy, in.LoanedOn, loanLabels["loaned_on"]),
	}
}

func (in ReturnInput) validate(l Loan) error {
	return validate(loanLabels,
		required("returned_on", in.ReturnedOn),
		optionalDate("returned_on", in.ReturnedOn),
		validator.DateNotBefore("returned_on", in.ReturnedOn, l.LoanedOn.Format(validator.DateLayout), loanLabels["loaned_on"]),
	)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(value string) time.Time {
	t, _ := validator.ParseDate(strings.TrimSpace(value))
	return t
}

// Values returns the input as submitted form values.
func (in LoanInput) Values() url.Values {
	return url.Values{
		"book_id":   {in.BookID},
		"patron_id": {in.PatronID},
		"loaned_on": {in.LoanedOn},
		"return_by": {in.ReturnBy},
	}
}

// Values returns the input as submitted form values.
func (in ReturnInput) Values() url.Values {
	return url.Values{"returned_on": {in.ReturnedOn}}
}
