package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvLoader struct{}

func (csvLoader) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

// Load strips a UTF-8 byte order mark and parses the remaining text.
func (csvLoader) Load(data []byte, opts Options) (*table.ParsedTable, error) {
	text := string(bytes.TrimPrefix(data, utf8BOM))
	if !opts.Strict {
		return table.Parse(text), nil
	}
	t, err := table.ParseStrict(text)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return t, nil
}
