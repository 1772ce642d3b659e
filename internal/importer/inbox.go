package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InboxFile describes a CSV waiting in the inbox directory.
type InboxFile struct {
	Name string
	Path string
	Size int64
}

const (
	inboxDir     = "inbox"
	processedDir = "inbox/processed"
	rejectedDir  = "inbox/rejected"
)

// ScanInbox returns CSV files directly under <dataDir>/inbox/.
func ScanInbox(dataDir string) ([]InboxFile, error) {
	dir := filepath.Join(dataDir, inboxDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []InboxFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, InboxFile{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves an imported file to inbox/processed/.
func MarkProcessed(dataDir, name string) error {
	return moveInbox(dataDir, name, processedDir)
}

// MarkRejected moves a file that was not imported to inbox/rejected/.
func MarkRejected(dataDir, name string) error {
	return moveInbox(dataDir, name, rejectedDir)
}

func moveInbox(dataDir, name, sub string) error {
	dstDir := filepath.Join(dataDir, sub)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sub, err)
	}
	src := filepath.Join(dataDir, inboxDir, name)
	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return fmt.Errorf("moving %s to %s: %w", name, sub, err)
	}
	return nil
}
