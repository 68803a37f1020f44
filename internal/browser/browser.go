package browser

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/debuglog"
	"github.com/pders01/newsdesk/internal/validation"
)

// Opener hands article links to the system browser. The browser runs as a
// separate process, so the opened page has no referrer or opener link back
// to newsdesk.
type Opener struct {
	command   string
	validator *validation.LinkValidator
	start     func(*exec.Cmd) error
}

func NewOpener(cfg *config.Config) *Opener {
	command := cfg.Browser.Opener
	if command == "" {
		command = defaultCommand(runtime.GOOS)
	}
	return &Opener{
		command:   command,
		validator: validation.NewLinkValidator(),
		start:     startDetached,
	}
}

// Open validates rawURL and launches the configured opener with it.
func (o *Opener) Open(rawURL string) error {
	link, err := o.validator.Validate(rawURL)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}

	cmd := exec.Command(o.command, args(o.command, link)...)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.command, err)
	}
	debuglog.Debugf("opened %s with %s", link, o.command)
	return nil
}

func defaultCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

// args avoids shell interpretation on Windows by going through rundll32
// instead of cmd /c start.
func args(command, link string) []string {
	if filepath.Base(command) == "rundll32" || filepath.Base(command) == "rundll32.exe" {
		return []string{"url.dll,FileProtocolHandler", link}
	}
	return []string{link}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
