package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RequiresStart(t *testing.T) {
	manager := NewManager()

	_, err := manager.Open(Options{DownloadDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestStop_BeforeStartIsNoop(t *testing.T) {
	manager := NewManager()
	assert.NoError(t, manager.Stop())
}

func TestSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	manager := NewManager()
	require.NoError(t, manager.Start())
	defer manager.Stop()

	downloadDir := t.TempDir()
	session, err := manager.Open(Options{
		DownloadDir: downloadDir,
		Headless:    true,
		Timeout:     10 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, downloadDir, session.DownloadDir())
	assert.True(t, session.Headless())

	require.NoError(t, session.Navigate("about:blank"))
	assert.Equal(t, "about:blank", session.URL())

	visible, err := session.IsVisible("#does-not-exist")
	require.NoError(t, err)
	assert.False(t, visible)

	// Close must be safe to call more than once.
	require.NoError(t, session.Close())
	assert.NoError(t, session.Close())
}

func TestOpen_RequiresDownloadDir(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	manager := NewManager()
	require.NoError(t, manager.Start())
	defer manager.Stop()

	_, err := manager.Open(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download directory")
}
