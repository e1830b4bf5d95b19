package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput is returned by ParseStrict when the text ends inside a
// quoted field.
var ErrMalformedInput = errors.New("malformed input")

const (
	delimiter  = ','
	terminator = '\n'
	quote      = '"'
)

type scanState int

const (
	unquoted scanState = iota
	quoted
)

// noPrev marks the lookback as empty, which is the case at the start of
// input and right after a delimiter or terminator.
const noPrev = -1

// scanner is a two-state machine over the bytes of the input. Every control
// character is ASCII, so multi-byte UTF-8 sequences and non-UTF-8 bytes are
// copied through unchanged. A field accumulates bytes until a delimiter or
// terminator is seen in the unquoted state.
//
//	state     byte        action
//	unquoted  '"'         append '"' if prev was '"' (escaped quote); -> quoted
//	quoted    '"'         -> unquoted
//	unquoted  ','         finish field
//	unquoted  '\n'        drop trailing '\r' if prev was '\r'; finish record
//	any       other       append
type scanner struct {
	state     scanState
	prev      int
	field     strings.Builder
	record    []string
	records   [][]string
	quoteOpen int
}

func (s *scanner) step(offset int, r byte) {
	switch {
	case r == quote:
		if s.state == unquoted {
			if s.prev == quote {
				s.field.WriteByte(quote)
			}
			s.state = quoted
			s.quoteOpen = offset
		} else {
			s.state = unquoted
		}
		s.prev = int(r)
	case s.state == unquoted && r == delimiter:
		s.endField()
		s.prev = noPrev
	case s.state == unquoted && r == terminator:
		if s.prev == '\r' {
			f := s.field.String()
			s.field.Reset()
			s.field.WriteString(f[:len(f)-1])
		}
		s.endField()
		s.records = append(s.records, s.record)
		s.record = nil
		s.prev = noPrev
	default:
		s.field.WriteByte(r)
		s.prev = int(r)
	}
}

func (s *scanner) endField() {
	s.record = append(s.record, s.field.String())
	s.field.Reset()
}

// finish flushes the last record. A final record holding one empty field is
// what a trailing newline (or empty input) leaves behind, so it is dropped.
func (s *scanner) finish() [][]string {
	s.endField()
	if !(len(s.record) == 1 && s.record[0] == "") {
		s.records = append(s.records, s.record)
	}
	s.record = nil
	return s.records
}

func scan(text string) (*scanner, [][]string) {
	s := &scanner{prev: noPrev}
	for off := 0; off < len(text); off++ {
		s.step(off, text[off])
	}
	return s, s.finish()
}

// ParseRecords splits text into raw records without building columns.
// Unterminated quoted fields are closed at end of input.
func ParseRecords(text string) [][]string {
	_, recs := scan(text)
	return recs
}

// Parse converts comma-delimited text into a ParsedTable. The first record is
// the header. Cell bytes are kept as given; input that is not UTF-8 is not
// re-encoded. Parse never fails: an unterminated quote is closed silently and
// empty input yields a table with no columns and no rows.
func Parse(text string) *ParsedTable {
	return FromRecords(ParseRecords(text))
}

// ParseStrict behaves like Parse but reports ErrMalformedInput when the text
// ends inside a quoted field.
func ParseStrict(text string) (*ParsedTable, error) {
	s, recs := scan(text)
	if s.state == quoted {
		return nil, fmt.Errorf("%w: unterminated quoted field opened at byte %d", ErrMalformedInput, s.quoteOpen)
	}
	return FromRecords(recs), nil
}
