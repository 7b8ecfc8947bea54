package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "est", "session.json")
	s := NewFileStorage(path)

	_, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(TokenKey, "tok-123"))
	require.NoError(t, s.Set(MemberKey, `{"email":"ada@uni.ts.it"}`))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second handle sees the same values
	v, ok, err := NewFileStorage(path).Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)

	require.NoError(t, s.Delete(TokenKey, MemberKey))
	_, ok, _ = s.Get(MemberKey)
	assert.False(t, ok)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	s := NewFileStorage(path)
	_, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(TokenKey, "fresh"))
	v, _, _ := s.Get(TokenKey)
	assert.Equal(t, "fresh", v)
}
