package sqlstore

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/svc/library"
)

// uniqueLabels maps a fragment of the violated constraint (postgres
// constraint name or sqlite "table.column") to the field label.
var uniqueLabels = []struct {
	fragment string
	label    string
}{
	{"library_id", library.LabelLibraryID},
	{"email", library.LabelEmail},
}

// mapError converts driver errors into domain failures. entity and id
// describe the record a missing row refers to.
func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if db.IsNotFoundError(err) {
		return apperror.NotFound(entity, id)
	}
	if target, ok := db.UniqueViolation(err); ok {
		for _, u := range uniqueLabels {
			if strings.Contains(target, u.fragment) {
				return apperror.Uniqueness(err, library.UniqueMessage(u.label))
			}
		}
	}
	return apperror.Fatal(err)
}

// mapLoanError is mapError for loan inserts. A foreign key violation means a
// book or patron was deleted after the service resolved it; each reference
// that no longer exists becomes a validation message.
func (s *Store) mapLoanError(ctx context.Context, err error, l library.Loan) error {
	if !db.IsForeignKeyViolationError(err) {
		return mapError(err, library.EntityLoan, "")
	}

	refs := []struct {
		table string
		id    int64
		label string
	}{
		{"books", l.BookID, library.LabelBook},
		{"patrons", l.PatronID, library.LabelPatron},
	}
	var messages []string
	for _, ref := range refs {
		var n int
		query := "SELECT COUNT(*) FROM " + ref.table + " WHERE id = " + s.ph(1)
		if qerr := s.db.QueryRowContext(ctx, query, ref.id).Scan(&n); qerr != nil {
			return apperror.Fatal(errors.Join(err, qerr))
		}
		if n == 0 {
			messages = append(messages, library.MissingMessage(ref.label))
		}
	}
	if len(messages) == 0 {
		return apperror.Fatal(err)
	}
	return apperror.Validation(messages...)
}
