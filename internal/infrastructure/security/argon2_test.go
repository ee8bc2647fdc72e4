package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap params keep the tests fast
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1})
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$"))

	assert.True(t, h.Verify("correct horse battery staple", encoded))
	assert.False(t, h.Verify("Correct horse battery staple", encoded))
}

func TestHashIsSalted(t *testing.T) {
	h := testHasher()
	a, err := h.Hash("pw-12345678")
	require.NoError(t, err)
	b, err := h.Hash("pw-12345678")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h := testHasher()
	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!$aGFzaA",
	} {
		assert.False(t, h.Verify("pw", bad), bad)
	}
}

func TestNeedsRehash(t *testing.T) {
	weak := testHasher()
	encoded, err := weak.Hash("pw-12345678")
	require.NoError(t, err)

	assert.False(t, weak.NeedsRehash(encoded))
	assert.True(t, NewArgon2Hasher(DefaultArgon2Params()).NeedsRehash(encoded))
	assert.True(t, weak.NeedsRehash("garbage"))
}
