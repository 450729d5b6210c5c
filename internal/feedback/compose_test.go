package feedback

import (
	"strings"
	"testing"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		options  []string
		selected []int
		text     string
		want     string
	}{
		{name: "nothing", want: ""},
		{name: "text only", text: "looks good", want: "looks good"},
		{name: "text is trimmed", text: "  \n details \n\n", want: "details"},
		{name: "whitespace text is dropped", options: []string{"A"}, selected: []int{0}, text: "   ", want: "A"},
		{name: "one option", options: []string{"Yes", "No"}, selected: []int{1}, want: "No"},
		{name: "scenario A", options: []string{"Yes", "No"}, selected: []int{1}, text: "details", want: "No\n\ndetails"},
		{
			name:     "original order not selection order",
			options:  []string{"a", "b", "c", "d"},
			selected: []int{3, 0, 2},
			want:     "a; c; d",
		},
		{
			name:     "out of range ignored",
			options:  []string{"a"},
			selected: []int{-1, 0, 5},
			text:     "x",
			want:     "a\n\nx",
		},
		{name: "multiline text kept", text: "line one\nline two", want: "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelectionSet(len(tt.options))
			for _, i := range tt.selected {
				sel.Add(i)
			}
			got := Compose(tt.options, sel, tt.text)
			if got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeAllSubsets(t *testing.T) {
	options := []string{"alpha", "beta", "gamma", "delta"}
	for mask := 0; mask < 1<<len(options); mask++ {
		sel := NewSelectionSet(len(options))
		var want []string
		for i := range options {
			if mask&(1<<i) != 0 {
				sel.Add(i)
				want = append(want, options[i])
			}
		}

		got := Compose(options, sel, "")
		if got != strings.Join(want, "; ") {
			t.Errorf("mask %04b: got %q", mask, got)
		}

		withText := Compose(options, sel, "note")
		expected := "note"
		if len(want) > 0 {
			expected = strings.Join(want, "; ") + "\n\nnote"
		}
		if withText != expected {
			t.Errorf("mask %04b with text: got %q, want %q", mask, withText, expected)
		}
		if strings.TrimSpace(withText) != withText {
			t.Errorf("mask %04b: unexpected surrounding whitespace in %q", mask, withText)
		}
	}
}

func TestComposeNilSelection(t *testing.T) {
	if got := Compose([]string{"a"}, nil, "t"); got != "t" {
		t.Errorf("got %q, want %q", got, "t")
	}
}

func TestSelectionSetToggle(t *testing.T) {
	sel := NewSelectionSet(3)
	sel.Toggle(1)
	sel.Toggle(2)
	sel.Toggle(1)
	if sel.Contains(1) || !sel.Contains(2) {
		t.Fatalf("unexpected selection %v", sel.Indices())
	}
	if sel.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sel.Len())
	}
}

func TestNewRequestDropsBlankOptions(t *testing.T) {
	req := NewRequest("q", []string{" Yes ", "", "  ", "No"})
	if len(req.Options) != 2 || req.Options[0] != "Yes" || req.Options[1] != "No" {
		t.Errorf("Options = %q", req.Options)
	}
}

func TestNewRequestOptionsSurviveChildRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"separator inside option", []string{"A|||B", "C"}, []string{"A", "B", "C"}},
		{"duplicates keep first", []string{"Yes", "No", " Yes"}, []string{"Yes", "No"}},
		{"duplicate via split", []string{"Yes", "No|||Yes"}, []string{"Yes", "No"}},
		{"single pipes kept", []string{"a|b", "c||d"}, []string{"a|b", "c||d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest("q", tt.in)
			if strings.Join(req.Options, ",") != strings.Join(tt.want, ",") || len(req.Options) != len(tt.want) {
				t.Fatalf("Options = %q, want %q", req.Options, tt.want)
			}
			child := NewRequest("q", SplitOptions(JoinOptions(req.Options)))
			if strings.Join(child.Options, "\x00") != strings.Join(req.Options, "\x00") {
				t.Errorf("child options = %q, want %q", child.Options, req.Options)
			}
		})
	}
}

func TestSplitOptions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a|||b", []string{"a", "b"}},
		{" a ||| |||b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := SplitOptions(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") || len(got) != len(tt.want) {
			t.Errorf("SplitOptions(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := SplitOptions(JoinOptions([]string{"x", "y z"})); len(got) != 2 || got[1] != "y z" {
		t.Errorf("round trip = %q", got)
	}
}
