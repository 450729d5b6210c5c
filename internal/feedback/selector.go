package feedback

import (
	"fmt"
	"strings"
)

// Choice is the closed set of presentation backends.
type Choice int

const (
	Terminal Choice = iota
	LocalWeb
	NativeGUI
)

func (c Choice) String() string {
	switch c {
	case Terminal:
		return "terminal"
	case LocalWeb:
		return "web"
	case NativeGUI:
		return "gui"
	default:
		return fmt.Sprintf("Choice(%d)", int(c))
	}
}

// Preference is what the operator asked for: a concrete backend or auto.
type Preference string

const (
	PreferAuto     Preference = "auto"
	PreferWeb      Preference = "web"
	PreferGUI      Preference = "gui"
	PreferTerminal Preference = "terminal"
)

// ParsePreference accepts auto|web|gui|terminal, case-insensitively. Empty means auto.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PreferAuto, nil
	case PreferAuto, PreferWeb, PreferGUI, PreferTerminal:
		return p, nil
	default:
		return "", fmt.Errorf("unknown backend preference %q (want auto, web, gui or terminal)", s)
	}
}

// Capabilities is a snapshot of the environment signals taken once per request.
type Capabilities struct {
	Display     bool // a display server is reachable
	GUIToolkit  bool // the native GUI helper can be launched
	WebResource bool // the web form templates are available
	Terminal    bool // a controlling terminal can be opened
}

// autoOrder is the fixed priority used for PreferAuto.
var autoOrder = []Choice{LocalWeb, NativeGUI, Terminal}

// Available reports whether the prerequisites of backend c hold.
func (caps Capabilities) Available(c Choice) bool {
	switch c {
	case LocalWeb:
		return caps.WebResource
	case NativeGUI:
		return caps.Display && caps.GUIToolkit
	case Terminal:
		return caps.Terminal
	default:
		return false
	}
}

// Select resolves a preference into exactly one backend. The result depends only on
// its arguments.
func Select(pref Preference, caps Capabilities) (Choice, error) {
	var want Choice
	switch pref {
	case PreferAuto, "":
		for _, c := range autoOrder {
			if caps.Available(c) {
				return c, nil
			}
		}
		return 0, NewError(KindNoBackendAvailable, "no backend prerequisites hold")
	case PreferWeb:
		want = LocalWeb
	case PreferGUI:
		want = NativeGUI
	case PreferTerminal:
		want = Terminal
	default:
		return 0, NewError(KindNoBackendAvailable, fmt.Sprintf("unknown preference %q", pref))
	}

	if !caps.Available(want) {
		return 0, NewError(KindNoBackendAvailable, fmt.Sprintf("%s backend prerequisites do not hold", want))
	}
	return want, nil
}
