package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndVerify(t *testing.T) {
	mgr := NewManager("test-secret-key-for-testing-only-32b!", 15)

	token, err := mgr.Generate("jdoe", 1)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := mgr.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "jdoe", claims.Login)
	assert.Equal(t, 1, claims.Level)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	mgr := NewManager("test-secret-key-for-testing-only-32b!", 15)
	other := NewManager("another-secret-entirely-and-32-bytes!", 15)

	token, err := mgr.Generate("jdoe", 1)
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	mgr := NewManager("test-secret-key-for-testing-only-32b!", -1)

	token, err := mgr.Generate("jdoe", 10)
	assert.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	mgr := NewManager("test-secret-key-for-testing-only-32b!", 15)

	_, err := mgr.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
