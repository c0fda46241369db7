package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/svc/library"
)

var (
	ErrReadFixtures    = errors.New("seed: failed to read fixtures")
	ErrUnknownBook     = errors.New("seed: unknown book")
	ErrUnknownPatron   = errors.New("seed: unknown patron")
	ErrNilSequence     = errors.New("seed: library id sequence is required")
	ErrFixtureRejected = errors.New("seed: fixture rejected")
)

// Fixtures is the YAML document accepted by Load.
//
//	books:
//	  - {title: The Hobbit, author: J.R.R. Tolkien, first_published: 1937}
//	patrons:
//	  - {first_name: Ada, last_name: Lovelace, address: London, email: ada@example.com, zip_code: 10001}
//	loans:
//	  - {book: The Hobbit, patron: ada@example.com, loaned_on: 2024-02-01, return_by: 2024-02-08}
//	generate:
//	  patrons: 20
type Fixtures struct {
	Books    []Book   `yaml:"books"`
	Patrons  []Patron `yaml:"patrons"`
	Loans    []Loan   `yaml:"loans"`
	Generate Generate `yaml:"generate"`
}

type Book struct {
	Title          string `yaml:"title"`
	Author         string `yaml:"author"`
	Genre          string `yaml:"genre"`
	FirstPublished int    `yaml:"first_published"`
}

// Patron fixture. An empty LibraryID is taken from the sequence.
type Patron struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Address   string `yaml:"address"`
	Email     string `yaml:"email"`
	LibraryID string `yaml:"library_id"`
	ZipCode   int    `yaml:"zip_code"`
}

// Loan fixture. Book is a book title, Patron a patron email or library id.
type Loan struct {
	Book       string `yaml:"book"`
	Patron     string `yaml:"patron"`
	LoanedOn   string `yaml:"loaned_on"`
	ReturnBy   string `yaml:"return_by"`
	ReturnedOn string `yaml:"returned_on"`
}

// Generate asks for synthetic records on top of the listed ones.
type Generate struct {
	Patrons int `yaml:"patrons"`
}

// Parse decodes fixtures from r.
func Parse(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, errors.Join(ErrReadFixtures, err)
	}
	return f, nil
}

// Load reads fixtures from a YAML file.
func Load(path string) (Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixtures{}, errors.Join(ErrReadFixtures, err)
	}
	defer file.Close()
	return Parse(file)
}

// Result counts created records.
type Result struct {
	Books    int
	Patrons  int
	Loans    int
	Returned int
}

// Apply creates the fixtures through the service, so every record passes the
// same validation as a form submission. Library ids missing from the
// fixtures and those of generated patrons are drawn from seq.
func Apply(ctx context.Context, svc *library.Service, f Fixtures, seq *Sequence, log *slog.Logger) (Result, error) {
	if seq == nil {
		return Result{}, ErrNilSequence
	}
	if log == nil {
		log = slog.Default()
	}

	var res Result
	books := make(map[string]int64, len(f.Books))
	patrons := make(map[string]int64, len(f.Patrons)*2)

	for _, b := range f.Books {
		in := library.BookInput{Title: b.Title, Author: b.Author, Genre: b.Genre}
		if b.FirstPublished != 0 {
			in.FirstPublished = strconv.Itoa(b.FirstPublished)
		}
		book, err := svc.CreateBook(ctx, in)
		if err != nil {
			return res, rejected("book "+b.Title, err)
		}
		books[strings.ToLower(book.Title)] = book.ID
		res.Books++
	}

	createPatron := func(p Patron) error {
		if p.LibraryID == "" {
			p.LibraryID = seq.Next()
		}
		patron, err := svc.CreatePatron(ctx, library.PatronInput{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Address:   p.Address,
			Email:     p.Email,
			LibraryID: p.LibraryID,
			ZipCode:   strconv.Itoa(p.ZipCode),
		})
		if err != nil {
			return rejected("patron "+p.Email, err)
		}
		patrons[strings.ToLower(patron.Email)] = patron.ID
		patrons[strings.ToLower(patron.LibraryID)] = patron.ID
		res.Patrons++
		return nil
	}
	for _, p := range f.Patrons {
		if err := createPatron(p); err != nil {
			return res, err
		}
	}
	for range f.Generate.Patrons {
		if err := createPatron(Generated(seq.Next())); err != nil {
			return res, err
		}
	}

	for _, l := range f.Loans {
		bookID, ok := books[strings.ToLower(l.Book)]
		if !ok {
			return res, fmt.Errorf("%w: %q", ErrUnknownBook, l.Book)
		}
		patronID, ok := patrons[strings.ToLower(l.Patron)]
		if !ok {
			return res, fmt.Errorf("%w: %q", ErrUnknownPatron, l.Patron)
		}

		in := library.LoanInput{
			BookID:   strconv.FormatInt(bookID, 10),
			PatronID: strconv.FormatInt(patronID, 10),
			LoanedOn: l.LoanedOn,
			ReturnBy: l.ReturnBy,
		}
		if in.LoanedOn == "" && in.ReturnBy == "" {
			defaults := svc.NewLoanDefaults()
			in.LoanedOn, in.ReturnBy = defaults.LoanedOn, defaults.ReturnBy
		}
		loan, err := svc.CreateLoan(ctx, in)
		if err != nil {
			return res, rejected("loan of "+l.Book, err)
		}
		res.Loans++

		if l.ReturnedOn != "" {
			if _, err := svc.ReturnLoan(ctx, strconv.FormatInt(loan.ID, 10), library.ReturnInput{ReturnedOn: l.ReturnedOn}); err != nil {
				return res, rejected("return of "+l.Book, err)
			}
			res.Returned++
		}
	}

	log.InfoContext(ctx, "fixtures applied",
		logger.Component("seed"),
		slog.Int("books", res.Books),
		slog.Int("patrons", res.Patrons),
		slog.Int("loans", res.Loans),
		slog.Int("returned", res.Returned),
	)
	return res, nil
}

func rejected(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFixtureRejected, what, err)
}
