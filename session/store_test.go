package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	assert.False(t, store.Tokens().Valid())

	assert.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))
	assert.True(t, store.Tokens().Valid())
	assert.Equal(t, "r", store.Tokens().Refresh)

	assert.NoError(t, store.Clear())
	assert.False(t, store.Tokens().Valid())
}

func TestFileStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewFileStore(path)
	assert.NoError(t, store.Save(Tokens{Access: "a", Refresh: "r"}))

	// A fresh store over the same path sees the session, the way
	// localStorage survives a page reload.
	reopened := NewFileStore(path)
	assert.Equal(t, Tokens{Access: "a", Refresh: "r"}, reopened.Tokens())

	assert.NoError(t, reopened.Clear())
	assert.False(t, store.Tokens().Valid())
	assert.NoError(t, reopened.Clear(), "clearing twice is fine")
}

func TestFileStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)
	assert.NoError(t, store.Save(Tokens{Access: "a"}))

	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	assert.False(t, store.Tokens().Valid())
}
