package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Action names what happened to a file.
type Action string

const (
	ActionImport Action = "import" // file recorded and rows stored
	ActionReject Action = "reject" // duplicate or invalid file, nothing stored
	ActionEnrich Action = "enrich" // enrichment pass finished
	ActionDelete Action = "delete" // file and its rows removed
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp time.Time `csv:"timestamp"`
	Action    Action    `csv:"action"`
	Filename  string    `csv:"filename"`
	FileID    uint64    `csv:"file_id"`
	Details   string    `csv:"details"`
}

const (
	logDir  = "logs"
	logFile = "logs/import-log.csv"
)

// Append writes entries to <dataDir>/logs/import-log.csv, creating the file
// and header if needed.
func Append(dataDir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dataDir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		err = gocsv.Marshal(&entries, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&entries, f)
	}
	if err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}
	return nil
}

// Read returns all entries from <dataDir>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.Unmarshal(f, &entries); err != nil {
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	return entries, nil
}
