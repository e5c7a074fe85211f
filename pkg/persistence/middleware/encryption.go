package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/mindbuffer/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

var (
	// ErrNoEnvelope is returned when a stored value was not written encrypted.
	ErrNoEnvelope = errors.New("value is missing encrypted data envelope")
	// ErrDecrypt is returned when no configured key opens a value, including
	// a value sealed for another store key.
	ErrDecrypt = errors.New("decryption failed with all available keys")
)

// envelope is what the wrapped store sees instead of the plain value.
type envelope struct {
	Encrypted string `json:"__encrypted__"`
}

type encryptionMiddleware struct {
	next ports.KVStore
	keys [][]byte // active key first
}

// NewEncryptionMiddleware creates a middleware that encrypts values using AES-GCM.
// Store keys stay in the clear so List keeps working; each value is sealed
// with its store key as associated data, so it only opens under that key.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	keys := append([][]byte{config.ActiveKey}, config.FallbackKeys...)
	return func(next ports.KVStore) ports.KVStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}
}

func (m *encryptionMiddleware) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := seal(m.keys[0], value, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	data, err := json.Marshal(envelope{Encrypted: base64.StdEncoding.EncodeToString(sealed)})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return m.next.Set(ctx, key, data)
}

func (m *encryptionMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Values written before encryption was enabled are rejected.
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Encrypted == "" {
		return nil, fmt.Errorf("%s: %w", key, ErrNoEnvelope)
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext of %s: %w", key, err)
	}

	for _, k := range m.keys {
		if plain, err := open(k, sealed, []byte(key)); err == nil {
			return plain, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", key, ErrDecrypt)
}

func (m *encryptionMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// seal returns nonce || ciphertext.
func seal(key, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

func open(key, sealed, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, aad)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
