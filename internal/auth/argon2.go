package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params are the cost parameters for new argon2id hashes.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

// DefaultArgon2Params returns the parameters used for new hashes.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:  64 * 1024,
		Time:    3,
		Threads: 4,
		SaltLen: 16,
		KeyLen:  32,
	}
}

// Argon2Hasher writes argon2id hashes in PHC string form and verifies both
// argon2id and argon2i encodings.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates an Argon2Hasher.
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params}
}

// Hash returns $argon2id$v=19$m=..,t=..,p=..$salt$key with a random salt.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	p := h.params
	key := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches an argon2i or argon2id encoded hash.
func (h *Argon2Hasher) Verify(encoded, plaintext string) bool {
	d, err := decodeArgon2(encoded)
	if err != nil {
		return false
	}

	var key []byte
	switch d.variant {
	case "argon2id":
		key = argon2.IDKey([]byte(plaintext), d.salt, d.time, d.memory, d.threads, uint32(len(d.key)))
	case "argon2i":
		key = argon2.Key([]byte(plaintext), d.salt, d.time, d.memory, d.threads, uint32(len(d.key)))
	default:
		return false
	}
	return subtle.ConstantTimeCompare(key, d.key) == 1
}

// Ceilings on cost parameters read back from a stored hash.
const (
	maxArgon2Memory  = 1 << 20 // KiB, 1 GiB
	maxArgon2Time    = 16
	maxArgon2Threads = 64
)

type decodedArgon2 struct {
	variant string
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// decodeArgon2 parses $variant$v=19$m=M,t=T,p=P$salt$key.
func decodeArgon2(encoded string) (decodedArgon2, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decodedArgon2{}, fmt.Errorf("malformed argon2 hash")
	}

	d := decodedArgon2{variant: parts[1]}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return decodedArgon2{}, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return decodedArgon2{}, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.memory, &d.time, &d.threads); err != nil {
		return decodedArgon2{}, fmt.Errorf("parse params: %w", err)
	}
	if d.time == 0 || d.threads == 0 {
		return decodedArgon2{}, fmt.Errorf("invalid argon2 params")
	}
	if d.memory > maxArgon2Memory || d.time > maxArgon2Time || d.threads > maxArgon2Threads {
		return decodedArgon2{}, fmt.Errorf("argon2 params m=%d,t=%d,p=%d exceed limits", d.memory, d.time, d.threads)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return decodedArgon2{}, fmt.Errorf("decode salt: %w", err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return decodedArgon2{}, fmt.Errorf("decode key: %w", err)
	}
	if len(d.key) == 0 {
		return decodedArgon2{}, fmt.Errorf("empty argon2 key")
	}
	return d, nil
}
