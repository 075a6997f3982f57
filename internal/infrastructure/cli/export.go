package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doeshing/gensuite/internal/ports"
)

// FileExporter offers to save a formatted result as a text file.
// Declining and write failures never escalate beyond a notice.
type FileExporter struct {
	console *Console
	// Dir is the directory results are written into; default current dir.
	Dir string
	// Now is the clock for default filenames; override in tests.
	Now func() time.Time
}

// NewFileExporter builds an exporter sharing the session console.
func NewFileExporter(console *Console) *FileExporter {
	return &FileExporter{console: console, Dir: ".", Now: time.Now}
}

// Offer implements ports.ResultExporter.
func (e *FileExporter) Offer(stem, content string) (string, error) {
	for {
		line, err := e.console.ReadLine("Save result to file? [y/N/?] > ")
		if err != nil {
			// EOF counts as a decline.
			return "", nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return e.save(stem, content)
		case "", "n", "no":
			return "", nil
		case "?", "h", "help":
			e.console.Notice("Saves the formatted result as a .txt file. Default name is gensuite-<kind>-<timestamp>.txt.")
		default:
			e.console.Notice("Answer y, n, or ? for help.")
		}
	}
}

func (e *FileExporter) save(stem, content string) (string, error) {
	def := e.defaultName(stem)
	name, err := e.console.ReadLine(fmt.Sprintf("Filename [%s] > ", def))
	if err != nil || strings.TrimSpace(name) == "" {
		name = def
	}
	name = NormalizeFilename(strings.TrimSpace(name))

	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", err
	}
	e.console.Notice("Saved to " + path)
	return path, nil
}

func (e *FileExporter) defaultName(stem string) string {
	return fmt.Sprintf("gensuite-%s-%s.txt", stem, e.Now().Format("20060102-150405"))
}

// NormalizeFilename ensures the exported file carries the .txt extension.
func NormalizeFilename(name string) string {
	if name == "" {
		return name
	}
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return name
	}
	return name + ".txt"
}

var _ ports.ResultExporter = (*FileExporter)(nil)
