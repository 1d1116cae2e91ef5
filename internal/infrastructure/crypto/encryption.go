package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EnvelopePrefix marks a stored value as encrypted: enc:<base64 iv>:<base64 ciphertext>.
const EnvelopePrefix = "enc:"

var ErrMalformedEnvelope = errors.New("malformed encrypted value")

type EncryptionService interface {
	Encrypt(plaintext string) (ciphertext, iv string, err error)
	Decrypt(ciphertext, iv string) (plaintext string, err error)
}

type AESEncryptionService struct {
	key []byte
}

func NewAESEncryptionService(hexKey string) (*AESEncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.New("invalid encryption key format")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &AESEncryptionService{key: key}, nil
}

func (s *AESEncryptionService) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *AESEncryptionService) Encrypt(plaintext string) (string, string, error) {
	gcm, err := s.gcm()
	if err != nil {
		return "", "", err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", err
	}

	ciphertext := gcm.Seal(nil, iv, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(iv),
		nil
}

func (s *AESEncryptionService) Decrypt(ciphertextB64, ivB64 string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", err
	}

	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil {
		return "", err
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}
	if len(iv) != gcm.NonceSize() {
		return "", ErrMalformedEnvelope
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// EncryptValue seals plaintext into a single envelope string.
func (s *AESEncryptionService) EncryptValue(plaintext string) (string, error) {
	ciphertext, iv, err := s.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return EnvelopePrefix + iv + ":" + ciphertext, nil
}

// DecryptValue opens an envelope produced by EncryptValue.
func (s *AESEncryptionService) DecryptValue(envelope string) (string, error) {
	if !IsEncrypted(envelope) {
		return "", ErrMalformedEnvelope
	}
	iv, ciphertext, ok := strings.Cut(strings.TrimPrefix(envelope, EnvelopePrefix), ":")
	if !ok || iv == "" || ciphertext == "" {
		return "", ErrMalformedEnvelope
	}

	plaintext, err := s.Decrypt(ciphertext, iv)
	if err != nil {
		return "", fmt.Errorf("decrypt value: %w", err)
	}
	return plaintext, nil
}

func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, EnvelopePrefix)
}
