// Package secure holds the handful of memory-hygiene helpers the CLI's
// key and passphrase handling actually calls: zeroing buffers once a
// derived key or secret is no longer needed, constant-time comparison
// for passphrase confirmation, and random-fill helpers for salts,
// nonces, and secure deletion.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Zero overwrites b with zero bytes in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// RandomOverwrite fills b with random bytes, then zeroes it -- used to
// scrub the in-memory copy of a deleted file's contents.
func RandomOverwrite(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("failed to overwrite with random data: %w", err)
	}
	Zero(b)
	return nil
}

// ConstantTimeCompare reports whether x and y hold the same bytes,
// without leaking timing information about where they first differ.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

// SecureRandom returns size cryptographically random bytes.
func SecureRandom(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}
