package table

import "fmt"

// Merge combines an incoming per-model fragment into an existing wide
// table and returns a new table. existing may be nil on the first merge
// of a run, in which case the result is the fragment itself.
//
// The result holds the union of rows from both sides. Columns already in
// existing keep their values untouched for rows existing already had;
// only the columns named in newCols are (re)populated from incoming, so
// merging one model's column can never rewrite another's. Rows only in
// incoming are appended with the missing marker everywhere incoming has
// no value. Repeating a merge with the same fragment is a no-op.
func Merge(existing, incoming *Table, newCols []string) (*Table, error) {
	if incoming == nil {
		return nil, fmt.Errorf("merge: incoming table is nil")
	}
	for _, name := range newCols {
		if !incoming.HasColumn(name) {
			return nil, fmt.Errorf("merge: incoming table lacks destination column %q", name)
		}
	}
	if existing == nil {
		return incoming.Clone(), nil
	}

	out := existing.Clone()

	replace := make(map[string]bool, len(newCols))
	for _, name := range newCols {
		replace[name] = true
	}

	// Fresh columns from the fragment (reference fields on a first-seen
	// shape, or this merge's destination columns) are appended; columns
	// both sides already share stay exactly as the existing table had
	// them unless this merge owns them.
	for _, name := range incoming.Columns() {
		if !out.HasColumn(name) {
			if err := out.AddColumn(name); err != nil {
				return nil, err
			}
		}
	}

	existingKeys := make(map[Key]bool, len(existing.rows))
	for key := range existing.rows {
		existingKeys[key] = true
	}

	for _, key := range incoming.Keys() {
		for _, name := range incoming.Columns()[len(KeyColumns):] {
			overwrite := replace[name]
			if !overwrite {
				// Non-destination cells fill only where the existing
				// table had nothing: a brand-new row, or a column the
				// existing table did not carry.
				if existingKeys[key] && existing.HasColumn(name) {
					continue
				}
			}
			if err := out.Set(key, name, incoming.Get(key, name)); err != nil {
				return nil, err
			}
		}
		// Rows carrying no non-key cells still join the union.
		out.ensureRow(key)
	}
	return out, nil
}
