// Package auth hashes and verifies the admin password.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials is returned when a password does not match the stored hash.
// Malformed hashes produce the same error.
var ErrInvalidCredentials = errors.New("incorrect password")

const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Hasher produces encoded one-way hashes and verifies plaintext against them.
// Verify never reports an internal failure as a match.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(encoded, plaintext string) bool
}

// New returns a Hasher that creates hashes with algorithm and verifies any
// supported encoding.
func New(algorithm string) (*MultiHasher, error) {
	return NewWithParams(algorithm, DefaultArgon2Params(), 0)
}

// NewWithParams is New with explicit argon2 parameters and bcrypt cost.
func NewWithParams(algorithm string, params Argon2Params, bcryptCost int) (*MultiHasher, error) {
	m := &MultiHasher{
		argon:  NewArgon2Hasher(params),
		bcrypt: NewBcryptHasher(bcryptCost),
	}
	switch algorithm {
	case "", AlgorithmArgon2id:
		m.primary = m.argon
	case AlgorithmBcrypt:
		m.primary = m.bcrypt
	default:
		return nil, fmt.Errorf("unknown password algorithm %q", algorithm)
	}
	return m, nil
}

// MultiHasher hashes with one algorithm and verifies by the encoding prefix.
type MultiHasher struct {
	primary Hasher
	argon   *Argon2Hasher
	bcrypt  *BcryptHasher
}

// Hash encodes plaintext with the configured algorithm.
func (m *MultiHasher) Hash(plaintext string) (string, error) {
	return m.primary.Hash(plaintext)
}

// Verify dispatches to the verifier matching encoded's prefix.
func (m *MultiHasher) Verify(encoded, plaintext string) bool {
	switch {
	case strings.HasPrefix(encoded, "$argon2"):
		return m.argon.Verify(encoded, plaintext)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return m.bcrypt.Verify(encoded, plaintext)
	default:
		return false
	}
}

// Check returns ErrInvalidCredentials unless plaintext matches encoded.
func Check(h Hasher, encoded, plaintext string) error {
	if !h.Verify(encoded, plaintext) {
		return ErrInvalidCredentials
	}
	return nil
}
