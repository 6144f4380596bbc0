package credential

import (
	"fmt"

	"github.com/kbukum/authgate/auth/password"
)

// Seed is an account declared in configuration. When PasswordHash is empty
// the plain Password is hashed at startup.
type Seed struct {
	ID           int    `mapstructure:"id"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// DefaultSeeds returns the built-in administrator account.
func DefaultSeeds() []Seed {
	return []Seed{{ID: 1, Username: "admin", Password: "admin123"}}
}

// BuildRecords turns seeds into records, hashing plain passwords with h.
func BuildRecords(seeds []Seed, h password.Hasher) ([]Record, error) {
	records := make([]Record, 0, len(seeds))
	for _, s := range seeds {
		hash := s.PasswordHash
		if hash == "" {
			if s.Password == "" {
				return nil, fmt.Errorf("seed %q: password or password_hash is required", s.Username)
			}
			var err error
			hash, err = h.Hash(s.Password)
			if err != nil {
				return nil, fmt.Errorf("seed %q: %w", s.Username, err)
			}
		}
		records = append(records, Record{ID: s.ID, Username: s.Username, PasswordHash: hash})
	}
	return records, nil
}

// NewStoreFromSeeds is BuildRecords followed by NewStore.
func NewStoreFromSeeds(seeds []Seed, h password.Hasher) (*Store, error) {
	records, err := BuildRecords(seeds, h)
	if err != nil {
		return nil, err
	}
	return NewStore(records...)
}
