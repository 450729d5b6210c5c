package web

import (
	"os/exec"
	"runtime"
)

// OpenBrowser attempts to open url in the user's default browser:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open
//   - Linux and others: xdg-open
//
// The browser process is started but not waited for.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
