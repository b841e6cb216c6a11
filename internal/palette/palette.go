// internal/palette/palette.go
//
// Static peg color table.
//
// The table is an immutable, ordered mapping from color id to display value,
// loaded once from the embedded assets/colors.txt. A palette of size n is the
// first n entries in table order ("1".."9" then "0").

package palette

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/VinEdw/mastermind-pvp/assets"
)

// Entry associates a color id with its display value.
type Entry struct {
	ID  string `json:"id"`
	Hex string `json:"hex"`
}

// Table is an ordered, read-only color table.
type Table struct {
	entries []Entry
	index   map[string]int
}

var (
	loadOnce sync.Once
	standard Table
	loadErr  error
)

// Standard returns the embedded color table.
// It panics if the embedded file is malformed, which is a build defect.
func Standard() Table {
	loadOnce.Do(func() {
		lines, err := assets.ColorLines()
		if err != nil {
			loadErr = err
			return
		}
		standard, loadErr = Parse(lines)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("palette: embedded color table: %v", loadErr))
	}
	return standard
}

// Parse builds a Table from "<id> <hex>" lines.
// Ids must be unique and hex values must look like #rrggbb.
func Parse(lines []string) (Table, error) {
	t := Table{index: make(map[string]int, len(lines))}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Table{}, fmt.Errorf("line %d: want \"<id> <hex>\", got %q", i+1, line)
		}
		id, hex := fields[0], strings.ToLower(fields[1])
		if !isHexColor(hex) {
			return Table{}, fmt.Errorf("line %d: bad color value %q", i+1, hex)
		}
		if _, dup := t.index[id]; dup {
			return Table{}, fmt.Errorf("line %d: duplicate id %q", i+1, id)
		}
		t.index[id] = len(t.entries)
		t.entries = append(t.entries, Entry{ID: id, Hex: hex})
	}
	if len(t.entries) == 0 {
		return Table{}, errors.New("empty color table")
	}
	return t, nil
}

// Len is the number of defined colors.
func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table in order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// IDs returns the first n color ids. n is clamped to [0, Len()].
func (t Table) IDs(n int) []string {
	if n > len(t.entries) {
		n = len(t.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.entries[i].ID
	}
	return out
}

// Hex looks up the display value for id.
func (t Table) Hex(id string) (string, bool) {
	i, ok := t.index[id]
	if !ok {
		return "", false
	}
	return t.entries[i].Hex, true
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
