// Package pipeline writes aggregated summary tables to disk.
package pipeline

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/AJ-Clark83/bears/stats"
)

// TableWriter persists named summary tables.
type TableWriter interface {
	WriteTable(name string, table stats.Table) error
	Close() error
	Validate() error
}

// CSVWriter writes each table to <dir>/<name>.csv.
type CSVWriter struct {
	dir     string
	written []string
	mu      sync.Mutex
}

// NewCSVWriter initialises a CSV writer rooted at dir.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &CSVWriter{dir: dir}, nil
}

// WriteTable writes the header row followed by every data row.
func (cw *CSVWriter) WriteTable(name string, table stats.Table) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	filename := filepath.Join(cw.dir, name+".csv")
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}

	cw.written = append(cw.written, filename)
	return nil
}

// Close is a no-op; each table's file is closed as it is written.
func (cw *CSVWriter) Close() error {
	return nil
}

// Validate ensures every written file has content besides its header.
func (cw *CSVWriter) Validate() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	for _, filename := range cw.written {
		info, err := os.Stat(filename)
		if err != nil {
			return fmt.Errorf("stat csv file: %w", err)
		}
		if info.Size() <= 0 {
			return fmt.Errorf("csv file %s is empty", filename)
		}
	}
	return nil
}

// JSONWriter writes each table to <dir>/<name>.json in JSONL format, one
// object per row keyed by column name.
type JSONWriter struct {
	dir     string
	written []string
	mu      sync.Mutex
}

// NewJSONWriter initialises the JSON writer rooted at dir.
func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &JSONWriter{dir: dir}, nil
}

// WriteTable appends the table's rows in JSONL format.
func (jw *JSONWriter) WriteTable(name string, table stats.Table) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	filename := filepath.Join(jw.dir, name+".json")
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for _, row := range table.Rows {
		record := make(map[string]string, len(table.Columns))
		for i, column := range table.Columns {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}

	jw.written = append(jw.written, filename)
	return nil
}

// Close is a no-op; each table's file is closed as it is written.
func (jw *JSONWriter) Close() error {
	return nil
}

// Validate ensures every written JSON file has data.
func (jw *JSONWriter) Validate() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	for _, filename := range jw.written {
		info, err := os.Stat(filename)
		if err != nil {
			return fmt.Errorf("stat json file: %w", err)
		}
		if info.Size() <= 0 {
			return fmt.Errorf("json file %s is empty", filename)
		}
	}
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
