package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a wide table from a CSV file. The header must begin
// with the key columns; duplicate keys in the file are an error, since
// row identity is what merge correctness rests on.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()
	return readCSV(file)
}

func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}
	t, err := New(header)
	if err != nil {
		return nil, err
	}
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table row: %w", err)
		}
		if len(cells) < len(KeyColumns) {
			return nil, fmt.Errorf("table row has %d cells, need at least %d", len(cells), len(KeyColumns))
		}
		key := Key{UUID: cells[0], BookTitle: cells[1]}
		if t.Has(key) {
			return nil, fmt.Errorf("duplicate row key (%s, %s)", key.UUID, key.BookTitle)
		}
		t.ensureRow(key)
		for i := len(KeyColumns); i < len(header) && i < len(cells); i++ {
			t.rows[key][i] = cells[i]
		}
	}
	return t, nil
}

// WriteCSV writes the table to w with the header first.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.cols); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, key := range t.keys {
		if err := writer.Write(t.rows[key]); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
