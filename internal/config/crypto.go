package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/99designs/keyring"
)

const (
	keyringService = "pgpeek"
	masterKeyName  = "__master_key__"
)

// Sealer encrypts profile passwords with AES-GCM.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a Sealer from a 16, 24 or 32 byte key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: gcm}, nil
}

// KeyringSealer creates a Sealer from the master key in the OS keyring,
// generating and storing one on first use.
func KeyringSealer() (*Sealer, error) {
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	key, err := masterKey(ring)
	if err != nil {
		return nil, err
	}
	return NewSealer(key)
}

// masterKey reads the hex master key from ring. A missing key is generated
// and stored; any other keyring failure is returned so an existing key is
// never overwritten.
func masterKey(ring keyring.Keyring) ([]byte, error) {
	item, err := ring.Get(masterKeyName)
	switch {
	case err == nil:
		return hex.DecodeString(string(item.Data))
	case !errors.Is(err, keyring.ErrKeyNotFound):
		return nil, fmt.Errorf("read master key: %w", err)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := ring.Set(keyring.Item{Key: masterKeyName, Data: []byte(hex.EncodeToString(key))}); err != nil {
		return nil, fmt.Errorf("store master key: %w", err)
	}
	return key, nil
}

// Seal encrypts plainText into a hex string.
func (s *Sealer) Seal(plainText string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(s.aead.Seal(nonce, nonce, []byte(plainText), nil)), nil
}

// Open decrypts a hex string produced by Seal.
func (s *Sealer) Open(cipherTextHex string) (string, error) {
	cipherText, err := hex.DecodeString(cipherTextHex)
	if err != nil {
		return "", err
	}

	nonceSize := s.aead.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	plainText, err := s.aead.Open(nil, cipherText[:nonceSize], cipherText[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plainText), nil
}
