package browser

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/newsdesk/internal/config"
)

func recordingOpener(t *testing.T, command string) (*Opener, *[][]string) {
	t.Helper()
	cfg := config.TestConfig()
	cfg.Browser.Opener = command
	o := NewOpener(cfg)

	var started [][]string
	o.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd.Args)
		return nil
	}
	return o, &started
}

func TestOpen_RejectsNonHTTP(t *testing.T) {
	o, started := recordingOpener(t, "xdg-open")

	for _, link := range []string{"", "null", "file:///etc/passwd", "javascript:alert(1)", "ftp://example.org"} {
		assert.Error(t, o.Open(link), link)
	}
	assert.Empty(t, *started, "nothing is launched for rejected links")
}

func TestOpen_LaunchesConfiguredCommand(t *testing.T) {
	o, started := recordingOpener(t, "firefox")

	require.NoError(t, o.Open("https://www.theverge.com/tech/1"))
	assert.Equal(t, [][]string{{"firefox", "https://www.theverge.com/tech/1"}}, *started)
}

func TestOpen_Rundll32Arguments(t *testing.T) {
	o, started := recordingOpener(t, "rundll32")

	require.NoError(t, o.Open("https://apnews.com/article/x"))
	assert.Equal(t, [][]string{{"rundll32", "url.dll,FileProtocolHandler", "https://apnews.com/article/x"}}, *started)
}

func TestOpen_StartFailure(t *testing.T) {
	o, _ := recordingOpener(t, "missing-browser")
	o.start = func(*exec.Cmd) error { return errors.New("executable file not found") }

	err := o.Open("https://apnews.com/article/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start missing-browser")
}

func TestDefaultCommand(t *testing.T) {
	assert.Equal(t, "open", defaultCommand("darwin"))
	assert.Equal(t, "xdg-open", defaultCommand("linux"))
	assert.Equal(t, "rundll32", defaultCommand("windows"))
	assert.Equal(t, "xdg-open", defaultCommand("freebsd"))
}

func TestNewOpener_FallsBackToPlatformDefault(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Browser.Opener = ""
	assert.NotEmpty(t, NewOpener(cfg).command)
}
