package feedback

import (
	"errors"
	"testing"
)

func TestSelect(t *testing.T) {
	all := Capabilities{Display: true, GUIToolkit: true, WebResource: true, Terminal: true}

	tests := []struct {
		name    string
		pref    Preference
		caps    Capabilities
		want    Choice
		wantErr bool
	}{
		{name: "auto prefers web", pref: PreferAuto, caps: all, want: LocalWeb},
		{
			name: "scenario D: headless with web resource",
			pref: PreferAuto,
			caps: Capabilities{WebResource: true},
			want: LocalWeb,
		},
		{
			name: "auto falls back to gui",
			pref: PreferAuto,
			caps: Capabilities{Display: true, GUIToolkit: true, Terminal: true},
			want: NativeGUI,
		},
		{
			name: "gui needs both display and toolkit",
			pref: PreferAuto,
			caps: Capabilities{Display: true, Terminal: true},
			want: Terminal,
		},
		{name: "auto with nothing", pref: PreferAuto, caps: Capabilities{}, wantErr: true},
		{name: "empty preference is auto", pref: "", caps: Capabilities{Terminal: true}, want: Terminal},
		{name: "explicit web", pref: PreferWeb, caps: all, want: LocalWeb},
		{name: "explicit terminal", pref: PreferTerminal, caps: all, want: Terminal},
		{name: "explicit gui", pref: PreferGUI, caps: all, want: NativeGUI},
		{
			name:    "explicit gui without display",
			pref:    PreferGUI,
			caps:    Capabilities{GUIToolkit: true, WebResource: true, Terminal: true},
			wantErr: true,
		},
		{
			name:    "explicit web never falls back",
			pref:    PreferWeb,
			caps:    Capabilities{Terminal: true},
			wantErr: true,
		},
		{name: "unknown preference", pref: "carrier-pigeon", caps: all, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.pref, tt.caps)
			if tt.wantErr {
				if !errors.Is(err, ErrNoBackendAvailable) {
					t.Fatalf("expected ErrNoBackendAvailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	prefs := []Preference{PreferAuto, PreferWeb, PreferGUI, PreferTerminal}
	for mask := 0; mask < 16; mask++ {
		caps := Capabilities{
			Display:     mask&1 != 0,
			GUIToolkit:  mask&2 != 0,
			WebResource: mask&4 != 0,
			Terminal:    mask&8 != 0,
		}
		for _, pref := range prefs {
			first, firstErr := Select(pref, caps)
			for i := 0; i < 20; i++ {
				got, err := Select(pref, caps)
				if got != first || (err == nil) != (firstErr == nil) {
					t.Fatalf("Select(%s, %+v) not deterministic", pref, caps)
				}
			}
		}
	}
}

func TestParsePreference(t *testing.T) {
	for in, want := range map[string]Preference{
		"":         PreferAuto,
		"auto":     PreferAuto,
		" WEB ":    PreferWeb,
		"gui":      PreferGUI,
		"Terminal": PreferTerminal,
	} {
		got, err := ParsePreference(in)
		if err != nil || got != want {
			t.Errorf("ParsePreference(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePreference("tui"); err == nil {
		t.Error("expected error for unknown preference")
	}
}

func TestChoiceString(t *testing.T) {
	if LocalWeb.String() != "web" || NativeGUI.String() != "gui" || Terminal.String() != "terminal" {
		t.Error("unexpected Choice strings")
	}
}
