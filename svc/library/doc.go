// Package library is the domain of the library manager: books, patrons and
// the loans binding them.
//
// Service operations validate string typed form inputs and report failures
// as *apperror.Error values, so the HTTP layer can decide between re-rendering
// a form and forwarding to the error page without inspecting messages.
//
//	svc := library.NewService(sqlstore.New(conn.DB, conn.Dialect))
//	loan, err := svc.ReturnLoan(ctx, "7", library.ReturnInput{ReturnedOn: "2024-05-01"})
//	switch {
//	case apperror.Is(err, apperror.KindAlreadyReturned):
//		// 403, forwarded
//	case apperror.Is(err, apperror.KindValidation):
//		// re-render the return form
//	}
package library
