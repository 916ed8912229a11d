package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// gojuonOrder fixes the sort order for kana initials on the filter keyboard.
const gojuonOrder = "あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん"

// Domain errors
var (
	ErrEmptyName     = errors.New("member name cannot be empty")
	ErrDuplicateName = errors.New("member names must be unique")
)

// Member is one roster entry: a display name plus its phonetic reading.
// The reading feeds the initial-filter keyboard only.
type Member struct {
	Name    string
	Reading string
}

// Roster is the fixed, ordered member list supplied at startup. The board and
// all reports iterate it in this order.
type Roster []Member

// Validate checks if the Roster has valid data.
// PRE: Roster is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: Names are non-empty and unique
func (r Roster) Validate() error {
	seen := make(map[string]bool, len(r))
	for i, m := range r {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("member %d: %w", i, ErrEmptyName)
		}
		if seen[m.Name] {
			return fmt.Errorf("member %q: %w", m.Name, ErrDuplicateName)
		}
		seen[m.Name] = true
	}
	return nil
}

// Names returns the member display names in roster order.
func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i, m := range r {
		names[i] = m.Name
	}
	return names
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, m := range r {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Initials returns the distinct first kana of all readings, sorted in gojūon
// order. Readings without a known kana sort last, after the syllabary.
func (r Roster) Initials() []string {
	seen := make(map[string]bool)
	var initials []string
	for _, m := range r {
		first := firstRune(m.Reading)
		if first == "" || seen[first] {
			continue
		}
		seen[first] = true
		initials = append(initials, first)
	}
	sort.Slice(initials, func(i, j int) bool {
		return gojuonIndex(initials[i]) < gojuonIndex(initials[j])
	})
	return initials
}

// FilterByInitial returns the names whose reading starts with the given kana,
// preserving roster order. An empty initial returns every name.
func (r Roster) FilterByInitial(initial string) []string {
	if initial == "" {
		return r.Names()
	}
	var names []string
	for _, m := range r {
		if strings.HasPrefix(m.Reading, initial) {
			names = append(names, m.Name)
		}
	}
	return names
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func gojuonIndex(kana string) int {
	if i := strings.Index(gojuonOrder, kana); i >= 0 {
		return i
	}
	return len(gojuonOrder)
}
