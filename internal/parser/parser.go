package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

// Loader turns the raw bytes of one input format into a ParsedTable.
type Loader interface {
	CanParse(filename string) bool
	Load(data []byte, opts Options) (*table.ParsedTable, error)
}

// Options controls loader behavior.
type Options struct {
	// Strict rejects unterminated quoted fields instead of closing them.
	Strict bool
	// Sheet selects a worksheet by name for spreadsheet inputs; empty means the first sheet.
	Sheet string
}

// ErrIO indicates the input could not be read. The table parser is never
// invoked on partially read input.
var ErrIO = errors.New("read input")

// ErrUnsupported indicates a format or sheet cannot be handled.
var ErrUnsupported = errors.New("unsupported input")

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ParseFile reads path and parses it with the first loader that accepts the
// filename. Unknown extensions are parsed as CSV text.
func ParseFile(path string, opts Options) (*table.ParsedTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ParseBytes(filepath.Base(path), data, opts)
}

// ParseBytes parses already-read content; name is only used to pick a loader.
func ParseBytes(name string, data []byte, opts Options) (*table.ParsedTable, error) {
	return loaderFor(name).Load(data, opts)
}

func loaderFor(name string) Loader {
	for _, l := range registry {
		if l.CanParse(name) {
			return l
		}
	}
	// Fallback to delimited text
	return csvLoader{}
}

func init() {
	// Register default loaders
	Register(csvLoader{})
	Register(xlsxLoader{})
}
