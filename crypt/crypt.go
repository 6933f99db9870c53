// Package crypt is a thin wrapper over authenticated symmetric encryption
// for small payloads: configuration values, tokens, fixtures. Keys are
// derived from a passphrase with argon2id and payloads are sealed with
// AES-256-GCM, packed into a single URL-safe token.
//
// It is deliberately minimal. Anything beyond passphrase-sealed blobs (key
// management, rotation, envelope encryption) belongs to a real KMS.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Token layout: version || salt || nonce || ciphertext.
const (
	tokenVersion = 0x01
	saltSize     = 16
	keySize      = 32
)

// argon2id parameters. Sized for interactive use.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrAuthentication is returned when a token cannot be authenticated:
// wrong passphrase, tampered payload, or not a token at all.
var ErrAuthentication = errors.New("crypt: message authentication failed")

// AsBase64 encodes data using standard base64.
func AsBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard or URL-safe base64, padded or not.
func FromBase64(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("crypt: invalid base64 input")
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keySize)
}

// Encrypt seals plaintext under a key derived from the passphrase and
// returns an opaque URL-safe token. Each call uses a fresh salt and nonce,
// so encrypting the same plaintext twice yields different tokens.
func Encrypt(passphrase string, plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	gcm, err := aead(passphrase, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	token := make([]byte, 0, 1+len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	token = append(token, tokenVersion)
	token = append(token, salt...)
	token = append(token, nonce...)
	token = gcm.Seal(token, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(token), nil
}

// Decrypt opens a token produced by Encrypt. Any failure to authenticate
// reports ErrAuthentication; the cause is deliberately not distinguished.
func Decrypt(passphrase, token string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrAuthentication
	}
	if len(data) < 1 || data[0] != tokenVersion {
		return nil, ErrAuthentication
	}
	data = data[1:]
	if len(data) < saltSize {
		return nil, ErrAuthentication
	}
	salt, data := data[:saltSize], data[saltSize:]
	gcm, err := aead(passphrase, salt)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, ErrAuthentication
	}
	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
