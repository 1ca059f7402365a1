package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keyInfo = "ppob-wallet/claims/v1"

var errCiphertext = errors.New("auth: malformed ciphertext")

// PayloadCipher seals token payloads with AES-256-GCM under a key derived from
// a passphrase. Sealed output is base64(nonce || ciphertext).
type PayloadCipher struct {
	aead cipher.AEAD
}

func NewPayloadCipher(passphrase string) (*PayloadCipher, error) {
	if passphrase == "" {
		return nil, errors.New("auth: empty encryption key")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("auth: derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &PayloadCipher{aead: aead}, nil
}

func (c *PayloadCipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (c *PayloadCipher) Open(sealed string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errCiphertext
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns+c.aead.Overhead() {
		return nil, errCiphertext
	}
	return c.aead.Open(nil, raw[:ns], raw[ns:], nil)
}
