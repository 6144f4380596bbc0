// Package credential holds the fixed set of accounts allowed to log in.
//
// The store is built once at startup and never written afterwards, so
// lookups need no locking.
package credential

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyUsername is returned when a record has no username.
	ErrEmptyUsername = errors.New("credential: username is required")

	// ErrEmptyHash is returned when a record has no password hash.
	ErrEmptyHash = errors.New("credential: password hash is required")

	// ErrDuplicateUsername is returned when two records share a username.
	ErrDuplicateUsername = errors.New("credential: duplicate username")

	// ErrDuplicateID is returned when two records share an ID.
	ErrDuplicateID = errors.New("credential: duplicate id")
)

// Record is a single account.
type Record struct {
	ID           int
	Username     string
	PasswordHash string
}

// Store is a read-only username index over Records.
type Store struct {
	byUsername map[string]Record
}

// NewStore builds a store from records. Records are copied.
func NewStore(records ...Record) (*Store, error) {
	s := &Store{byUsername: make(map[string]Record, len(records))}
	ids := make(map[int]struct{}, len(records))

	for i, r := range records {
		if r.Username == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrEmptyUsername)
		}
		if r.PasswordHash == "" {
			return nil, fmt.Errorf("record %q: %w", r.Username, ErrEmptyHash)
		}
		if _, ok := s.byUsername[r.Username]; ok {
			return nil, fmt.Errorf("record %q: %w", r.Username, ErrDuplicateUsername)
		}
		if _, ok := ids[r.ID]; ok {
			return nil, fmt.Errorf("record %q: %w %d", r.Username, ErrDuplicateID, r.ID)
		}
		ids[r.ID] = struct{}{}
		s.byUsername[r.Username] = r
	}
	return s, nil
}

// FindByUsername returns the record with exactly this username.
func (s *Store) FindByUsername(username string) (Record, bool) {
	r, ok := s.byUsername[username]
	return r, ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.byUsername)
}
