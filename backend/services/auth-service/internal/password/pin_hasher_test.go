package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("4821")
	require.NoError(t, err)
	assert.NotEqual(t, "4821", hash)

	assert.NoError(t, h.Compare(hash, "4821"))
	assert.ErrorIs(t, h.Compare(hash, "4822"), ErrMismatch)
}

func TestBcryptHasher_EmptyPIN(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.Error(t, err)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	err := NewBcryptHasher(bcrypt.MinCost).Compare("not-a-hash", "4821")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
