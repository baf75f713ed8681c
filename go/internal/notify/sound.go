// Package notify plays alert sounds through an external audio player.
package notify

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// AlertFileName is the file users drop into their user files directory to
// replace the bundled alert.
const AlertFileName = "alert.mp3"

// ResolveAlertPath prefers the user's alert.mp3 over the bundled sound.
func ResolveAlertPath(userFilesDir, defaultPath string) string {
	if userFilesDir != "" {
		candidate := filepath.Join(userFilesDir, AlertFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return defaultPath
}

// Player plays a sound file.
type Player interface {
	Play(path string) error
}

// CommandPlayer plays sounds by running an external command such as
// "paplay" or "afplay" with the file appended to its arguments.
type CommandPlayer struct {
	command string
	args    []string
}

// NewCommandPlayer parses a command line like "mpv --no-video". An empty
// line yields a player that does nothing.
func NewCommandPlayer(commandLine string) *CommandPlayer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return &CommandPlayer{}
	}
	return &CommandPlayer{command: fields[0], args: fields[1:]}
}

// Play starts the player and returns without waiting for playback to end.
func (p *CommandPlayer) Play(path string) error {
	if p.command == "" {
		return nil
	}
	if path == "" {
		return errors.New("no sound file")
	}

	args := append(append([]string{}, p.args...), path)
	cmd := exec.Command(p.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", p.command, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warn().Err(err).Str("command", p.command).Str("path", path).Msg("sound player exited with error")
		}
	}()
	return nil
}
