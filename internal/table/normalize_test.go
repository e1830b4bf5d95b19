package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"First Name":       "firstName",
		"ID":               "iD",
		"A":                "a",
		"first name":       "firstName",
		"FirstName":        "firstName",
		"email address 2":  "emailAddress2",
		"snake_case col":   "snake_caseCol",
		"e-mail":           "e-Mail",
		"Age (years)":      "age(Years)",
		"":                 "",
		"  Leading Spaces": "LeadingSpaces",
		"tab\tseparated":   "tabSeparated",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}
