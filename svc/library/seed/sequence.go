package seed

import (
	"fmt"
	"strconv"
)

// DefaultPrefix is prepended to generated library ids.
const DefaultPrefix = "MCL"

// Sequence hands out library ids "<prefix><n>" with n increasing from start.
// It is owned by the caller and not safe for concurrent use.
type Sequence struct {
	prefix string
	next   int
}

func NewSequence(prefix string, start int) *Sequence {
	return &Sequence{prefix: prefix, next: start}
}

// Next returns the next library id and advances the sequence.
func (s *Sequence) Next() string {
	id := s.Peek()
	s.next++
	return id
}

// Peek returns the id Next would return without advancing.
func (s *Sequence) Peek() string {
	return s.prefix + strconv.Itoa(s.next)
}

// Generated returns a synthetic patron keyed by its library id.
func Generated(libraryID string) Patron {
	return Patron{
		LibraryID: libraryID,
		FirstName: "Patron",
		LastName:  libraryID,
		Address:   fmt.Sprintf("%s Library Lane", libraryID),
		Email:     fmt.Sprintf("%s@patrons.example.com", libraryID),
		ZipCode:   10000,
	}
}
