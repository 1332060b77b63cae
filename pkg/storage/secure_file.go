// Package storage persists CLI artifacts -- Shamir shares, or any byte
// blob -- to disk, encrypted at rest. The core library never touches
// the filesystem; this is purely ambient CLI support, adapted from the
// source's password-protected wallet-share storage to the new domain's
// artifacts.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/gf256/pkg/secure"
	"github.com/Davincible/gf256/pkg/shamir"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 32
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)

// SecureStorage encrypts and persists an arbitrary byte blob to a
// single file using AES-256-GCM with a PBKDF2-derived key.
type SecureStorage struct {
	filepath string
}

// EncryptedData is the on-disk envelope: salt and nonce in the clear,
// alongside the sealed ciphertext.
type EncryptedData struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewSecureStorage targets the given file path.
func NewSecureStorage(path string) *SecureStorage {
	return &SecureStorage{filepath: path}
}

// Save encrypts data under password and writes it to disk.
func (s *SecureStorage) Save(data []byte, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("storage: password must not be empty")
	}

	salt, err := secure.SecureRandom(SaltSize)
	if err != nil {
		return fmt.Errorf("storage: generating salt: %w", err)
	}

	key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("storage: creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("storage: creating GCM: %w", err)
	}

	nonce, err := secure.SecureRandom(NonceSize)
	if err != nil {
		return fmt.Errorf("storage: generating nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, data, nil)
	encrypted := EncryptedData{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}

	jsonData, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("storage: marshaling envelope: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filepath), 0700); err != nil {
		return fmt.Errorf("storage: creating directory: %w", err)
	}
	if err := os.WriteFile(s.filepath, jsonData, 0600); err != nil {
		return fmt.Errorf("storage: writing file: %w", err)
	}
	return nil
}

// Load decrypts and returns the stored blob.
func (s *SecureStorage) Load(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("storage: password must not be empty")
	}

	jsonData, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("storage: reading file: %w", err)
	}

	var encrypted EncryptedData
	if err := json.Unmarshal(jsonData, &encrypted); err != nil {
		return nil, fmt.Errorf("storage: unmarshaling envelope: %w", err)
	}

	key := pbkdf2.Key(password, encrypted.Salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("storage: creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("storage: creating GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, encrypted.Nonce, encrypted.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: decrypting: %w", err)
	}
	return plaintext, nil
}

// Exists reports whether the target file is present.
func (s *SecureStorage) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

// Delete overwrites the file with random data before removing it, and
// scrubs the in-memory copy of its old contents once read.
func (s *SecureStorage) Delete() error {
	if !s.Exists() {
		return nil
	}
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return fmt.Errorf("storage: reading file for secure deletion: %w", err)
	}
	defer secure.RandomOverwrite(data)

	filler, err := secure.SecureRandom(len(data))
	if err != nil {
		return fmt.Errorf("storage: overwriting file: %w", err)
	}
	defer secure.Zero(filler)
	if err := os.WriteFile(s.filepath, filler, 0600); err != nil {
		return fmt.Errorf("storage: overwriting file: %w", err)
	}
	return os.Remove(s.filepath)
}

// ShareStorage persists a Shamir sharing session -- all shares plus
// the threshold/total configuration used to produce them.
type ShareStorage struct {
	storage *SecureStorage
}

// StoredShares is the on-disk (encrypted) representation of a split.
type StoredShares struct {
	Shares    []shamir.Share    `json:"shares"`
	Threshold int               `json:"threshold"`
	Total     int               `json:"total"`
	Metadata  map[string]string `json:"metadata"`
}

// NewShareStorage targets the given file path.
func NewShareStorage(path string) *ShareStorage {
	return &ShareStorage{storage: NewSecureStorage(path)}
}

// SaveShares encrypts and writes a split's shares to disk.
func (s *ShareStorage) SaveShares(shares []shamir.Share, threshold, total int, password []byte) error {
	stored := StoredShares{
		Shares:    shares,
		Threshold: threshold,
		Total:     total,
		Metadata:  make(map[string]string),
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("storage: marshaling shares: %w", err)
	}
	return s.storage.Save(data, password)
}

// LoadShares decrypts and returns a previously saved split.
func (s *ShareStorage) LoadShares(password []byte) (*StoredShares, error) {
	data, err := s.storage.Load(password)
	if err != nil {
		return nil, err
	}
	var stored StoredShares
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("storage: unmarshaling shares: %w", err)
	}
	return &stored, nil
}

// Exists reports whether a saved split is present.
func (s *ShareStorage) Exists() bool { return s.storage.Exists() }

// Delete securely removes a saved split.
func (s *ShareStorage) Delete() error { return s.storage.Delete() }
