package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

// Decryption failure classes. None of them ever carries key material.
var (
	ErrInvalidKey     = errors.New("encryption key must be 32 bytes (64 hex chars)")
	ErrBlobTooShort   = errors.New("ciphertext blob too short")
	ErrBlobEncoding   = errors.New("ciphertext blob is not valid base64")
	ErrAuthentication = errors.New("ciphertext failed authentication")
)

// EncryptionService protects wallet secrets at rest. The blob format is
// base64(nonce || ciphertext || tag): tampering with any byte makes Decrypt
// fail rather than return garbage.
type EncryptionService interface {
	Encrypt(plaintext string) (blob string, err error)
	Decrypt(blob string) (plaintext string, err error)
}

type AESEncryptionService struct {
	key []byte
}

// NewAESEncryptionService parses a 64-hex-char AES-256 key. Construction
// fails on a malformed key so no encrypt/decrypt call can proceed silently.
func NewAESEncryptionService(hexKey string) (*AESEncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if len(key) != 32 {
		return nil, ErrInvalidKey
	}
	return &AESEncryptionService{key: key}, nil
}

func (s *AESEncryptionService) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Seal appends ciphertext+tag to the nonce, producing one opaque blob.
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *AESEncryptionService) Decrypt(blob string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrBlobEncoding
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize()+gcm.Overhead() {
		return "", ErrBlobTooShort
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrAuthentication
	}

	return string(plaintext), nil
}
