package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/config"
)

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:3000")
	require.NoError(t, err)

	url, err := l.Save(context.Background(), "abc.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/profile/abc.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "profile", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	_, err = l.Save(context.Background(), "abc.png", strings.NewReader("again"), 5, "image/png")
	assert.Error(t, err, "existing objects are never overwritten")
}

func TestLocalSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://x")
	require.NoError(t, err)

	url, err := l.Save(context.Background(), "../../etc/evil.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://x/uploads/profile/evil.png", url)
	_, err = os.Stat(filepath.Join(dir, "profile", "evil.png"))
	assert.NoError(t, err)
}

func TestNewMinioValidates(t *testing.T) {
	_, err := NewMinio(config.StorageConfig{})
	assert.Error(t, err)

	m, err := NewMinio(config.StorageConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "wallet"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", m.publicURL)
}

func TestLocalDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://x")
	require.NoError(t, err)
	_, err = l.Save(context.Background(), "gone.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	require.NoError(t, l.Delete(context.Background(), "gone.png"))
	_, err = os.Stat(filepath.Join(dir, "profile", "gone.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Delete(context.Background(), "gone.png"), "deleting twice is fine")
}
