package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAlertPath(t *testing.T) {
	userDir := t.TempDir()
	emptyDir := t.TempDir()
	const bundled = "/addon/sounds/alert.mp3"

	userAlert := filepath.Join(userDir, AlertFileName)
	require.NoError(t, os.WriteFile(userAlert, []byte("mp3"), 0o644))

	assert.Equal(t, userAlert, ResolveAlertPath(userDir, bundled))
	assert.Equal(t, bundled, ResolveAlertPath(emptyDir, bundled))
	assert.Equal(t, bundled, ResolveAlertPath("", bundled))
}

func TestResolveAlertPath_IgnoresDirectory(t *testing.T) {
	userDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(userDir, AlertFileName), 0o755))

	assert.Equal(t, "bundled.mp3", ResolveAlertPath(userDir, "bundled.mp3"))
}

func TestCommandPlayer(t *testing.T) {
	tests := []struct {
		name    string
		command string
		path    string
		wantErr bool
	}{
		{name: "disabled player", command: "", path: "alert.mp3"},
		{name: "whitespace only", command: "   ", path: "alert.mp3"},
		{name: "missing binary", command: "definitely-not-a-player-binary", path: "alert.mp3", wantErr: true},
		{name: "no file", command: "true", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCommandPlayer(tt.command).Play(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewCommandPlayer_SplitsArguments(t *testing.T) {
	p := NewCommandPlayer("mpv --no-video --really-quiet")
	assert.Equal(t, "mpv", p.command)
	assert.Equal(t, []string{"--no-video", "--really-quiet"}, p.args)
}
