package feedback

import (
	"sort"
	"strings"
)

// SelectionSet holds indices into Request.Options.
type SelectionSet struct {
	n       int
	indices map[int]struct{}
}

// NewSelectionSet creates an empty set for a list of n options.
func NewSelectionSet(n int) *SelectionSet {
	return &SelectionSet{n: n, indices: make(map[int]struct{})}
}

// Add marks option i as selected. Out-of-range indices are ignored and reported as false.
func (s *SelectionSet) Add(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	s.indices[i] = struct{}{}
	return true
}

// Toggle flips the selection of option i.
func (s *SelectionSet) Toggle(i int) {
	if s.Contains(i) {
		delete(s.indices, i)
		return
	}
	s.Add(i)
}

func (s *SelectionSet) Contains(i int) bool {
	if s == nil {
		return false
	}
	_, ok := s.indices[i]
	return ok
}

func (s *SelectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.indices)
}

// Indices returns the selected indices in ascending order.
func (s *SelectionSet) Indices() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.indices))
	for i := range s.indices {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Compose builds the canonical feedback text. Selected options are joined with "; " in
// their original order as the first paragraph, the trimmed free text is the second, and
// the paragraphs are separated by a blank line.
func Compose(options []string, selected *SelectionSet, text string) string {
	var picked []string
	for i, opt := range options {
		if selected.Contains(i) {
			picked = append(picked, opt)
		}
	}

	var parts []string
	if len(picked) > 0 {
		parts = append(parts, strings.Join(picked, "; "))
	}
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, "\n\n")
}
