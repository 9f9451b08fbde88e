package schema

import (
	"fmt"
	"regexp"
)

// TypeDefinition extracts the textual type or enum block for name from
// the schema source. Returns false when the source holds no matching
// block, which callers treat as a skippable condition rather than an
// error.
func (s *Schema) TypeDefinition(name string) (string, bool) {
	pattern := fmt.Sprintf(`(type|enum)\s+%s\s*\{[^{}]*\}`, regexp.QuoteMeta(name))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}
	match := re.FindString(s.Source)
	if match == "" {
		return "", false
	}
	return match, true
}
