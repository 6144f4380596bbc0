// Package password hashes seeded account passwords and checks login
// attempts against them, with bcrypt by default or argon2id.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxBcryptLen = 72
	argon2Prefix = "$argon2id$"
	argon2Format = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s"
)

var (
	ErrMismatch      = errors.New("password: mismatch")
	ErrMalformedHash = errors.New("password: malformed hash")
	ErrTooShort      = errors.New("password: too short")
	ErrTooLong       = errors.New("password: longer than 72 bytes")
)

// Hasher turns a password into a storable hash and checks candidates
// against it. Verify returns nil, ErrMismatch or ErrMalformedHash.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type hasher struct {
	cfg Config
}

// New returns a Hasher for cfg. Zero fields take their defaults.
func New(cfg Config) Hasher {
	cfg.ApplyDefaults()
	return &hasher{cfg: cfg}
}

func (h *hasher) Hash(password string) (string, error) {
	if len(password) < h.cfg.MinLength {
		return "", fmt.Errorf("%w: minimum length is %d characters", ErrTooShort, h.cfg.MinLength)
	}
	if h.cfg.Algorithm == Argon2id {
		return h.argon2(password)
	}
	if len(password) > maxBcryptLen {
		return "", ErrTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify picks the algorithm from the hash itself.
func (h *hasher) Verify(password, hash string) error {
	if strings.HasPrefix(hash, argon2Prefix) {
		return verifyArgon2(password, hash)
	}
	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

func (h *hasher) argon2(password string) (string, error) {
	p := h.cfg.Argon2
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, 32)
	b64 := base64.RawStdEncoding
	return fmt.Sprintf(argon2Format, argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		b64.EncodeToString(salt)+"$"+b64.EncodeToString(key)), nil
}

// verifyArgon2 checks a PHC string: $argon2id$v=19$m=65536,t=1,p=4$salt$key.
func verifyArgon2(password, encoded string) error {
	var version int
	var p Argon2Params
	var rest string
	if _, err := fmt.Sscanf(encoded, argon2Format, &version, &p.MemoryKiB, &p.Time, &p.Threads, &rest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version || p.Time == 0 || p.Threads == 0 {
		return fmt.Errorf("%w: unsupported parameters", ErrMalformedHash)
	}
	saltText, keyText, ok := strings.Cut(rest, "$")
	salt, saltErr := base64.RawStdEncoding.DecodeString(saltText)
	want, keyErr := base64.RawStdEncoding.DecodeString(keyText)
	if !ok || saltErr != nil || keyErr != nil || len(want) == 0 {
		return fmt.Errorf("%w: salt or key", ErrMalformedHash)
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
