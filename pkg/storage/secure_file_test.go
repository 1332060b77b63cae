package storage

import (
	"path/filepath"
	"testing"

	"github.com/Davincible/gf256/pkg/shamir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := NewSecureStorage(filepath.Join(t.TempDir(), "blob.enc"))
	password := []byte("correct horse battery staple")
	data := []byte("secret payload bytes")

	require.NoError(t, store.Save(data, password))
	assert.True(t, store.Exists())

	got, err := store.Load(password)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLoadWithWrongPasswordFails(t *testing.T) {
	store := NewSecureStorage(filepath.Join(t.TempDir(), "blob.enc"))
	require.NoError(t, store.Save([]byte("payload"), []byte("right password")))

	_, err := store.Load([]byte("wrong password"))
	assert.Error(t, err)
}

func TestSaveRejectsEmptyPassword(t *testing.T) {
	store := NewSecureStorage(filepath.Join(t.TempDir(), "blob.enc"))
	err := store.Save([]byte("payload"), nil)
	assert.Error(t, err)
}

func TestDeleteRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.enc")
	store := NewSecureStorage(path)
	require.NoError(t, store.Save([]byte("payload"), []byte("password")))

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
}

func TestDeleteOnMissingFileIsNoOp(t *testing.T) {
	store := NewSecureStorage(filepath.Join(t.TempDir(), "absent.enc"))
	assert.NoError(t, store.Delete())
}

func TestShareStorageRoundTrips(t *testing.T) {
	store := NewShareStorage(filepath.Join(t.TempDir(), "shares.enc"))
	password := []byte("share storage password")

	shares := []shamir.Share{
		{Index: 1, Data: []byte{0x01, 0x02}},
		{Index: 2, Data: []byte{0x03, 0x04}},
		{Index: 3, Data: []byte{0x05, 0x06}},
	}

	require.NoError(t, store.SaveShares(shares, 2, 3, password))

	loaded, err := store.LoadShares(password)
	require.NoError(t, err)
	assert.Equal(t, shares, loaded.Shares)
	assert.Equal(t, 2, loaded.Threshold)
	assert.Equal(t, 3, loaded.Total)
}
