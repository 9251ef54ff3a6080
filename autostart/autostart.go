// Package autostart registers the tracker to start at user login.
package autostart

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/slihbo/WinTrace/internal/apperr"
)

const (
	// AppName is the name shown by the desktop and the Windows Run key.
	AppName = "WinTrace"

	// Label identifies the macOS LaunchAgent.
	Label = "com.wintrace.agent"

	desktopFile = "wintrace.desktop"
)

var (
	ErrUnsupported = &apperr.Error{
		Message: "autostart is not supported on %s",
	}

	errEnable = &apperr.Error{
		Message: "unable to enable autostart",
	}

	errDisable = &apperr.Error{
		Message: "unable to disable autostart",
	}

	errExecutable = &apperr.Error{
		Message: "unable to locate the wintrace executable",
	}
)

// Args are the arguments the registered command starts with.
var Args = []string{"run"}

// Executable returns the resolved path of the running binary.
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errExecutable.Wrap(err)
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return exe, nil
	}

	return resolved, nil
}

// DesktopEntry renders the XDG autostart entry launching exe.
func DesktopEntry(exe string) string {
	var sb strings.Builder

	sb.WriteString("[Desktop Entry]\n")
	sb.WriteString("Type=Application\n")
	fmt.Fprintf(&sb, "Name=%s\n", AppName)
	sb.WriteString("Comment=Track foreground application usage\n")
	fmt.Fprintf(&sb, "Exec=%s\n", shellquote.Join(append([]string{exe}, Args...)...))
	sb.WriteString("Terminal=false\n")
	sb.WriteString("NoDisplay=true\n")
	sb.WriteString("X-GNOME-Autostart-enabled=true\n")

	return sb.String()
}

// LaunchAgentPlist renders the macOS LaunchAgent running exe at login, with
// its output sent to logDir.
func LaunchAgentPlist(exe, logDir string) string {
	var args strings.Builder

	for _, a := range append([]string{exe}, Args...) {
		fmt.Fprintf(&args, "<string>%s</string>", escape(a))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict>
  <key>Label</key><string>%s</string>
  <key>ProgramArguments</key><array>%s</array>
  <key>RunAtLoad</key><true/>
  <key>KeepAlive</key><false/>
  <key>StandardOutPath</key><string>%s</string>
  <key>StandardErrorPath</key><string>%s</string>
</dict></plist>
`,
		Label,
		args.String(),
		escape(filepath.Join(logDir, Label+".out.log")),
		escape(filepath.Join(logDir, Label+".err.log")),
	)
}

func escape(s string) string {
	var sb strings.Builder

	_ = xml.EscapeText(&sb, []byte(s))

	return sb.String()
}
