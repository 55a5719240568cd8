package order

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// csv column headers expected by the loader
const (
	columnOrderID = "order_id"
	columnStatus  = "status"
	columnItem    = "item"
)

// ReadOrders populates the store with base records from CSV data. The first
// row is the header; orders are keyed by the order_id, status and item
// columns. Rows with a missing or empty value in any of the three columns are
// skipped. Duplicate order ids keep the first-seen record (Store.Add
// semantics). Returns the number of records loaded.
func ReadOrders(r io.Reader, store *Store) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-row, not fatal

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range []string{columnOrderID, columnStatus, columnItem} {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("csv header missing column %q", col)
		}
	}

	loaded := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// malformed row, skip; the reader has advanced past it
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("read csv row: %w", err)
		}
		orderID := field(row, index[columnOrderID])
		status := field(row, index[columnStatus])
		item := field(row, index[columnItem])
		if orderID == "" || status == "" || item == "" {
			continue
		}
		before := store.Len()
		store.Add(Order{OrderID: orderID, Status: Status(status), Item: item})
		if store.Len() > before {
			loaded++
		}
	}
	return loaded, nil
}

// LoadFile opens path and loads its records into a fresh store.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders csv: %w", err)
	}
	defer f.Close()

	store := NewStore()
	if _, err := ReadOrders(f, store); err != nil {
		return nil, err
	}
	return store, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
