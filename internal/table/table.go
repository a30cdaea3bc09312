// Package table models the persisted wide output table: one row per
// benchmark example, one column per extracted field. Merging is pure
// (input table + incoming fragment -> new table) so that one model's
// extraction pass can never alias or rewrite another model's column.
package table

import (
	"fmt"
)

// Missing is the cell marker for an absent value.
const Missing = ""

// Key identifies one benchmark example row.
type Key struct {
	UUID      string
	BookTitle string
}

// KeyColumns is the fixed key-column prefix of every wide table.
var KeyColumns = []string{"uuid", "book_title"}

// Table is a keyed-row, ordered-column string table.
type Table struct {
	cols    []string
	colPos  map[string]int
	keys    []Key
	rows    map[Key][]string
}

// New creates an empty table with the given columns. The key columns
// must come first.
func New(cols []string) (*Table, error) {
	if len(cols) < len(KeyColumns) {
		return nil, fmt.Errorf("table needs at least the key columns %v", KeyColumns)
	}
	for i, name := range KeyColumns {
		if cols[i] != name {
			return nil, fmt.Errorf("column %d must be %q, got %q", i, name, cols[i])
		}
	}
	t := &Table{
		cols:   append([]string(nil), cols...),
		colPos: make(map[string]int, len(cols)),
		rows:   make(map[Key][]string),
	}
	for i, name := range cols {
		if _, dup := t.colPos[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		t.colPos[name] = i
	}
	return t, nil
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether the table has a column of that name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colPos[name]
	return ok
}

// Keys returns the row keys in table order.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.keys...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.keys)
}

// Has reports whether a row exists for the key.
func (t *Table) Has(key Key) bool {
	_, ok := t.rows[key]
	return ok
}

// Get returns the cell for (key, column), or the missing marker.
func (t *Table) Get(key Key, column string) string {
	pos, ok := t.colPos[column]
	if !ok {
		return Missing
	}
	row, ok := t.rows[key]
	if !ok {
		return Missing
	}
	return row[pos]
}

// Set writes one cell, appending the row if the key is new. Key cells
// are derived from the key and cannot be set directly.
func (t *Table) Set(key Key, column, value string) error {
	pos, ok := t.colPos[column]
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	if pos < len(KeyColumns) {
		return fmt.Errorf("column %q is a key column", column)
	}
	t.ensureRow(key)
	t.rows[key][pos] = value
	return nil
}

// AddColumn appends a new column filled with the missing marker. Adding
// an existing column is an error: columns are added, never implicitly
// replaced or deleted.
func (t *Table) AddColumn(name string) error {
	if _, exists := t.colPos[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	t.colPos[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for key, row := range t.rows {
		t.rows[key] = append(row, Missing)
	}
	return nil
}

// Clone returns a deep copy sharing no state with the original.
func (t *Table) Clone() *Table {
	out := &Table{
		cols:   append([]string(nil), t.cols...),
		colPos: make(map[string]int, len(t.colPos)),
		keys:   append([]Key(nil), t.keys...),
		rows:   make(map[Key][]string, len(t.rows)),
	}
	for name, pos := range t.colPos {
		out.colPos[name] = pos
	}
	for key, row := range t.rows {
		out.rows[key] = append([]string(nil), row...)
	}
	return out
}

func (t *Table) ensureRow(key Key) {
	if _, ok := t.rows[key]; ok {
		return
	}
	row := make([]string, len(t.cols))
	row[0] = key.UUID
	row[1] = key.BookTitle
	for i := len(KeyColumns); i < len(row); i++ {
		row[i] = Missing
	}
	t.rows[key] = row
	t.keys = append(t.keys, key)
}
