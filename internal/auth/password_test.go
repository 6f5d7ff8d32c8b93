package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordVerifier_ExactMatchOnly(t *testing.T) {
	v, err := NewPasswordVerifierFromPlain("s3cret")
	require.NoError(t, err)

	assert.NoError(t, v.Verify("s3cret"))
	assert.ErrorIs(t, v.Verify("S3cret"), ErrIncorrectPassword)
	assert.ErrorIs(t, v.Verify("s3cret "), ErrIncorrectPassword)
	assert.ErrorIs(t, v.Verify(""), ErrIncorrectPassword)
}

func TestPasswordVerifier_RejectsOverlongCandidates(t *testing.T) {
	base := strings.Repeat("a", MaxPasswordLength)
	v, err := NewPasswordVerifierFromPlain(base)
	require.NoError(t, err)

	assert.NoError(t, v.Verify(base))
	assert.ErrorIs(t, v.Verify(base+"extra"), ErrIncorrectPassword)
}

func TestNewPasswordVerifier_ValidatesHash(t *testing.T) {
	_, err := NewPasswordVerifier("")
	assert.ErrorIs(t, err, ErrPasswordNotSet)

	_, err = NewPasswordVerifier("not-a-hash")
	assert.Error(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := NewPasswordVerifier(" " + string(hash) + "\n")
	require.NoError(t, err)
	assert.NoError(t, v.Verify("pw"))
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrPasswordNotSet)

	_, err = HashPassword(strings.Repeat("x", MaxPasswordLength+1))
	assert.Error(t, err)

	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
}

func TestNilVerifier(t *testing.T) {
	var v *PasswordVerifier
	assert.ErrorIs(t, v.Verify("anything"), ErrPasswordNotSet)
}
