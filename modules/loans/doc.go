// Package loans serves the loan pages: listings by scope, the new loan form
// and the return form.
//
// Returning a loan twice is rejected with a 403 before any validation, both
// when the return form is requested and when it is submitted.
package loans
