package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the size in bytes of secret keys.
	KeySize   = 32
	nonceSize = 24
)

// ErrDecrypt is returned when ciphertext can't be authenticated with the key.
var ErrDecrypt = errors.New("failed decrypting data")

// EncryptSym performs symmetric encryption of plaintext using NaCl primitives
// (XSalsa20 and Poly1305). The random nonce is prepended to the output.
func EncryptSym(plaintext []byte, secretKey *[KeySize]byte) ([]byte, error) {
	nonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed generating nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plaintext, nonce, secretKey), nil
}

// DecryptSym reverses EncryptSym.
func DecryptSym(ciphertext []byte, secretKey *[KeySize]byte) ([]byte, error) {
	if len(ciphertext) < nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, secretKey)
	if !ok {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}

// NewKey generates a random secret key.
func NewKey() (*[KeySize]byte, error) {
	key := new([KeySize]byte)
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, err
	}

	return key, nil
}

// EncodeKey encodes key as a base 58 string.
func EncodeKey(key *[KeySize]byte) string {
	return base58.Encode(key[:])
}

// DecodeKey decodes and validates a base 58 encoded key.
func DecodeKey(keyEnc string) (*[KeySize]byte, error) {
	keyDec, err := base58.Decode(keyEnc)
	if err != nil {
		return nil, err
	}
	if len(keyDec) != KeySize {
		return nil, fmt.Errorf("expected key length of %d; got %d", KeySize, len(keyDec))
	}

	var key [KeySize]byte
	copy(key[:], keyDec)

	return &key, nil
}

func generateNonce() (*[nonceSize]byte, error) {
	nonce := new([nonceSize]byte)
	_, err := io.ReadFull(rand.Reader, nonce[:])
	if err != nil {
		return nil, err
	}

	return nonce, nil
}
