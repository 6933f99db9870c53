package crypt_test

import (
	"errors"
	"testing"

	"github.com/attrkit/attrkit/crypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsBase64(t *testing.T) {
	assert.Equal(t, "TWlja2V5IE1vdXNl", crypt.AsBase64([]byte("Mickey Mouse")))
	assert.Equal(t, "TWlja2V5IE1vdXNl0L8=", crypt.AsBase64([]byte("Mickey Mouseп")))
}

func TestFromBase64(t *testing.T) {
	data, err := crypt.FromBase64("TWlubmllIE1vdXNl")
	require.NoError(t, err)
	assert.Equal(t, []byte("Minnie Mouse"), data)

	// URL-safe and unpadded input decodes too.
	data, err = crypt.FromBase64("Tc65bm7OuWUgTW_PhXNl")
	require.NoError(t, err)
	assert.Equal(t, []byte("Mιnnιe Moυse"), data)

	_, err = crypt.FromBase64("!!! not base64 !!!")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	token, err := crypt.Encrypt("secret passphrase", []byte("the plaintext"))
	require.NoError(t, err)
	assert.NotContains(t, token, "the plaintext")

	plaintext, err := crypt.Decrypt("secret passphrase", token)
	require.NoError(t, err)
	assert.Equal(t, []byte("the plaintext"), plaintext)
}

func TestEncrypt_FreshTokens(t *testing.T) {
	a, err := crypt.Encrypt("pass", []byte("same"))
	require.NoError(t, err)
	b, err := crypt.Encrypt("pass", []byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	token, err := crypt.Encrypt("right", []byte("payload"))
	require.NoError(t, err)

	_, err = crypt.Decrypt("wrong", token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypt.ErrAuthentication))
}

func TestDecrypt_Tampered(t *testing.T) {
	token, err := crypt.Encrypt("pass", []byte("payload"))
	require.NoError(t, err)

	// Flip a character in the ciphertext region.
	b := []byte(token)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}
	_, err = crypt.Decrypt("pass", string(b))
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypt.ErrAuthentication))
}

func TestDecrypt_Garbage(t *testing.T) {
	_, err := crypt.Decrypt("pass", "not a token")
	assert.True(t, errors.Is(err, crypt.ErrAuthentication))
	_, err = crypt.Decrypt("pass", "")
	assert.True(t, errors.Is(err, crypt.ErrAuthentication))
}
