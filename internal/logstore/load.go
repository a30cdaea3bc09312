package logstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// maxLineBytes bounds a single log line. Long-context responses can run
// to hundreds of kilobytes, so the scanner buffer is generous.
const maxLineBytes = 16 * 1024 * 1024

// Index is a keyed view of one or more append-only log streams holding
// the latest record per (uuid, book_title, model).
type Index struct {
	records map[Key]Record
	order   []Key

	// Malformed counts lines that were not valid JSON or were missing
	// the identity fields. Superseded counts records replaced by a later
	// occurrence of the same key.
	Malformed  int
	Superseded int
}

// ReadAll parses every well-formed record from the given JSONL paths in
// order, without deduplication. Malformed lines are skipped and counted.
func ReadAll(paths ...string) ([]Record, int, error) {
	var records []Record
	malformed := 0
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, malformed, fmt.Errorf("open log: %w", err)
		}
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var record Record
			if err := json.Unmarshal(line, &record); err != nil {
				malformed++
				continue
			}
			records = append(records, record)
		}
		scanErr := scanner.Err()
		closeErr := file.Close()
		if scanErr != nil {
			return nil, malformed, fmt.Errorf("scan %s: %w", path, scanErr)
		}
		if closeErr != nil {
			return nil, malformed, fmt.Errorf("close %s: %w", path, closeErr)
		}
	}
	return records, malformed, nil
}

// Load reads the given JSONL paths, in priority order, into a keyed
// index. Duplicate keys resolve last-occurrence-wins: a later record for
// the same triple supersedes the earlier one in full, matching the
// append order of the concatenated streams.
func Load(paths ...string) (*Index, error) {
	records, malformed, err := ReadAll(paths...)
	if err != nil {
		return nil, err
	}
	index := &Index{
		records:   make(map[Key]Record),
		Malformed: malformed,
	}
	for _, record := range records {
		if record.UUID == "" || record.BookTitle == "" {
			index.Malformed++
			continue
		}
		if record.Model == "" {
			record.Model = "unknown"
		}
		key := record.Key()
		if _, seen := index.records[key]; seen {
			index.Superseded++
		} else {
			index.order = append(index.order, key)
		}
		index.records[key] = record
	}
	return index, nil
}

// Len returns the number of distinct keys in the index.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Get returns the latest record for a key.
func (ix *Index) Get(key Key) (Record, bool) {
	record, ok := ix.records[key]
	return record, ok
}

// Keys returns the index keys in first-appearance order.
func (ix *Index) Keys() []Key {
	out := make([]Key, len(ix.order))
	copy(out, ix.order)
	return out
}

// Models returns the distinct model identifiers present, sorted.
func (ix *Index) Models() []string {
	seen := map[string]bool{}
	for key := range ix.records {
		seen[key.Model] = true
	}
	models := make([]string, 0, len(seen))
	for model := range seen {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

// FilterByModel restricts the index to entries for exactly one model.
// Merging a model's column must only ever see that model's records; an
// empty result is a zero-match condition for the caller to report, not
// an error.
func (ix *Index) FilterByModel(model string) *Index {
	filtered := &Index{
		records:    make(map[Key]Record),
		Malformed:  ix.Malformed,
		Superseded: ix.Superseded,
	}
	for _, key := range ix.order {
		if key.Model != model {
			continue
		}
		filtered.records[key] = ix.records[key]
		filtered.order = append(filtered.order, key)
	}
	return filtered
}
