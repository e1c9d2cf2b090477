package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AJ-Clark83/bears/stats"
)

func sampleTable() stats.Table {
	return stats.Table{
		Columns: []string{"Player", "Innings", "Runs"},
		Rows: [][]string{
			{"A Batter", "2", "80"},
			{"B Batter", "1", "30"},
		},
	}
}

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewCSVWriter(dir)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	if err := writer.WriteTable("batting_overall", sampleTable()); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "batting_overall.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two rows", len(lines))
	}
	if lines[0] != "Player,Innings,Runs" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A Batter,2,80" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestJSONWriterKeysRowsByColumn(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewJSONWriter(dir)
	if err != nil {
		t.Fatalf("NewJSONWriter() error = %v", err)
	}

	if err := writer.WriteTable("batting_overall", sampleTable()); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "batting_overall.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("records = %d, want 2", len(lines))
	}

	var record map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if record["Player"] != "A Batter" || record["Runs"] != "80" {
		t.Errorf("record = %v", record)
	}
}

func TestDualWriterWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewDualWriter(dir)
	if err != nil {
		t.Fatalf("NewDualWriter() error = %v", err)
	}

	if err := writer.WriteTable("bowling_overall", sampleTable()); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for _, name := range []string{"bowling_overall.csv", "bowling_overall.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestCSVWriterCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := NewCSVWriter(dir); err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", err)
	}
}
