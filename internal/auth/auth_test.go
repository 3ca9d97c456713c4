package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

func testParams() Argon2Params {
	return Argon2Params{Memory: 64, Time: 1, Threads: 1, SaltLen: 8, KeyLen: 16}
}

func TestArgon2_HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(testParams())

	encoded, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$"))

	assert.True(t, h.Verify(encoded, "hunter22"))
	assert.False(t, h.Verify(encoded, "hunter23"))
	assert.False(t, h.Verify(encoded, ""))
}

func TestArgon2_RandomSalt(t *testing.T) {
	h := NewArgon2Hasher(testParams())

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2_VerifiesLegacyArgon2i(t *testing.T) {
	salt := []byte("randomsalt")
	key := argon2.Key([]byte("letmein"), salt, 3, 4096, 1, 32)
	encoded := fmt.Sprintf("$argon2i$v=19$m=4096,t=3,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	h := NewArgon2Hasher(testParams())
	assert.True(t, h.Verify(encoded, "letmein"))
	assert.False(t, h.Verify(encoded, "letmeout"))
}

func TestArgon2_MalformedHashIsNoMatch(t *testing.T) {
	h := NewArgon2Hasher(testParams())

	cases := []string{
		"",
		" ",
		"$argon2id$",
		"$argon2id$v=19$m=64,t=1,p=1$!!!$abc",
		"$argon2id$v=16$m=64,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=64,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2d$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2i$v=19$m=2097152,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=64,t=4294967295,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=64,t=1,p=200$c2FsdA$aGFzaA",
	}
	for _, c := range cases {
		assert.False(t, h.Verify(c, "password"), "hash %q", c)
	}
}

func TestArgon2_ParamLimits(t *testing.T) {
	_, err := decodeArgon2("$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorContains(t, err, "exceed limits")

	d, err := decodeArgon2("$argon2id$v=19$m=1048576,t=16,p=64$c2FsdA$aGFzaA")
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<20), d.memory)

	h, err := NewWithParams(AlgorithmArgon2id, testParams(), bcrypt.MinCost)
	require.NoError(t, err)
	err = Check(h, "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	encoded, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, h.Verify(encoded, "hunter22"))
	assert.False(t, h.Verify(encoded, "wrong"))
	assert.False(t, h.Verify("not-a-hash", "hunter22"))
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New("md5")
	assert.ErrorContains(t, err, "unknown password algorithm")
}

func TestMultiHasher_DispatchesByPrefix(t *testing.T) {
	argonFirst, err := NewWithParams(AlgorithmArgon2id, testParams(), bcrypt.MinCost)
	require.NoError(t, err)
	bcryptFirst, err := NewWithParams(AlgorithmBcrypt, testParams(), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := argonFirst.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a, "$argon2id$"))

	b, err := bcryptFirst.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b, "$2a$"))

	// Either hasher verifies either encoding.
	for _, h := range []*MultiHasher{argonFirst, bcryptFirst} {
		assert.True(t, h.Verify(a, "secret1"))
		assert.True(t, h.Verify(b, "secret1"))
		assert.False(t, h.Verify(a, "secret2"))
		assert.False(t, h.Verify(b, "secret2"))
		assert.False(t, h.Verify(" ", "secret1"))
	}
}

func TestCheck(t *testing.T) {
	h, err := NewWithParams(AlgorithmArgon2id, testParams(), 0)
	require.NoError(t, err)

	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NoError(t, Check(h, encoded, "correct horse"))
	assert.ErrorIs(t, Check(h, encoded, "battery staple"), ErrInvalidCredentials)
	assert.ErrorIs(t, Check(h, "garbage", "correct horse"), ErrInvalidCredentials)
}
