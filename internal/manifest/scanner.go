package manifest

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ReadVersionField locates the version key directly inside the top-level
// [package] table and returns its unquoted value together with the exact
// span of the quoted literal in raw. Only the first occurrence is
// targeted; keys named version in other tables (dependencies, nested
// tables) are never matched.
func ReadVersionField(raw []byte) (string, Span, error) {
	var table string

	for line := range scanLines(raw) {
		trimmed := strings.TrimSpace(line.text)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		case strings.HasPrefix(trimmed, "["):
			table = tableName(trimmed)
			continue
		}

		if table != "package" {
			continue
		}

		value, span, ok, err := stringValueSpan(line, "version")
		if err != nil {
			return "", Span{}, err
		}
		if ok {
			return value, span, nil
		}
	}

	return "", Span{}, ErrVersionFieldNotFound
}

// ParsePackage unmarshals the [package] table with a real TOML parser.
// It serves two purposes: extracting the package name for the lockfile
// step, and cross-checking the scanner. If the parsed version disagrees
// with the scanned one the span is wrong and the caller must not write.
func ParsePackage(raw []byte, scannedVersion string) (Package, error) {
	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return Package{}, fmt.Errorf("manifest is not valid TOML: %w", err)
	}
	if doc.Package.Name == "" {
		return Package{}, fmt.Errorf("manifest has no [package] name")
	}
	if doc.Package.Version != scannedVersion {
		return Package{}, fmt.Errorf("version scan mismatch: scanner found %q but TOML parse found %q", scannedVersion, doc.Package.Version)
	}
	return doc.Package, nil
}

// FindPackageVersionSpan locates the version literal of the [[package]]
// lockfile entry matching both name and version. Returns
// ErrPackageNotFound when no entry matches.
func FindPackageVersionSpan(raw []byte, name, version string) (Span, error) {
	var (
		inPackage bool
		curName   string
		curValue  string
		curSpan   Span
		haveSpan  bool
	)

	matches := func() bool {
		return inPackage && haveSpan && curName == name && curValue == version
	}

	for line := range scanLines(raw) {
		trimmed := strings.TrimSpace(line.text)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		case strings.HasPrefix(trimmed, "["):
			// Entering a new table closes the current block.
			if matches() {
				return curSpan, nil
			}
			inPackage = trimmed == "[[package]]"
			curName, curValue, haveSpan = "", "", false
			continue
		}

		if !inPackage {
			continue
		}

		if v, _, ok, err := stringValueSpan(line, "name"); err == nil && ok {
			curName = v
			continue
		}
		if v, span, ok, err := stringValueSpan(line, "version"); err == nil && ok {
			curValue = v
			curSpan = span
			haveSpan = true
		}
	}

	if matches() {
		return curSpan, nil
	}
	return Span{}, ErrPackageNotFound
}

// tableName extracts the name from a table header line, handling both
// [name] and [[name]] forms.
func tableName(header string) string {
	s := strings.TrimSpace(header)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimPrefix(s, "[")
	if i := strings.IndexByte(s, ']'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// scannedLine is one physical line of the document with its byte offset.
type scannedLine struct {
	text  string
	start int
}

// scanLines yields each line of raw along with the byte offset of its
// first character. Line terminators are not included in text but offsets
// are computed against the raw buffer, so spans derived from a line index
// directly into raw.
func scanLines(raw []byte) func(yield func(scannedLine) bool) {
	return func(yield func(scannedLine) bool) {
		pos := 0
		for pos < len(raw) {
			end := pos
			for end < len(raw) && raw[end] != '\n' {
				end++
			}
			text := string(raw[pos:end])
			text = strings.TrimSuffix(text, "\r")
			if !yield(scannedLine{text: text, start: pos}) {
				return
			}
			pos = end + 1
		}
	}
}

// stringValueSpan matches a `key = "value"` assignment on a single line
// and returns the unquoted value plus the span of the quoted literal
// (quotes included) within the raw document. ok is false when the line
// assigns a different key. An error is returned when the key matches but
// the value is not a plain string literal the scanner can handle.
func stringValueSpan(line scannedLine, key string) (string, Span, bool, error) {
	i := 0
	text := line.text

	// Leading indentation.
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}

	if !strings.HasPrefix(text[i:], key) {
		return "", Span{}, false, nil
	}
	i += len(key)

	// The key must end here: "version" must not match "versions".
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i >= len(text) || text[i] != '=' {
		return "", Span{}, false, nil
	}
	i++
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}

	if i >= len(text) {
		return "", Span{}, false, fmt.Errorf("%s value is missing a string literal", key)
	}

	quote := text[i]
	if quote != '"' && quote != '\'' {
		return "", Span{}, false, fmt.Errorf("%s value is not a string literal", key)
	}

	open := i
	closing := -1
	for j := open + 1; j < len(text); j++ {
		if text[j] == '\\' && quote == '"' {
			// Escaped version strings are out of scope for an in-place
			// rewrite; a semver literal never needs escapes.
			return "", Span{}, false, fmt.Errorf("%s value contains escape sequences", key)
		}
		if text[j] == quote {
			closing = j
			break
		}
	}
	if closing < 0 {
		return "", Span{}, false, fmt.Errorf("%s value has an unterminated string literal", key)
	}

	value := text[open+1 : closing]
	span := Span{Start: line.start + open, End: line.start + closing + 1}
	return value, span, true, nil
}
