package manifest

import (
	"errors"
	"fmt"
)

// WriteVersionField replaces the quoted literal identified by span with
// newValue, preserving the original quote character. Every byte outside
// the span is copied verbatim: this is a pure substring substitution,
// never a re-serialization, so formatting, comments, and key order
// elsewhere in the document survive untouched.
func WriteVersionField(raw []byte, span Span, newValue string) ([]byte, error) {
	if span.Start < 0 || span.End > len(raw) || span.Len() < 2 {
		return nil, fmt.Errorf("invalid span [%d:%d] for document of %d bytes", span.Start, span.End, len(raw))
	}

	quote := raw[span.Start]
	if (quote != '"' && quote != '\'') || raw[span.End-1] != quote {
		return nil, errors.New("span does not cover a quoted string literal")
	}

	updated := make([]byte, 0, len(raw)-span.Len()+len(newValue)+2)
	updated = append(updated, raw[:span.Start]...)
	updated = append(updated, quote)
	updated = append(updated, newValue...)
	updated = append(updated, quote)
	updated = append(updated, raw[span.End:]...)
	return updated, nil
}

// ReplacePackageVersion rewrites the version literal of the lockfile
// entry matching name and oldVersion. Returns ErrPackageNotFound when no
// entry matches; callers decide whether that is fatal (for cargobump it
// is a silent skip).
func ReplacePackageVersion(raw []byte, name, oldVersion, newVersion string) ([]byte, error) {
	span, err := FindPackageVersionSpan(raw, name, oldVersion)
	if err != nil {
		return nil, err
	}
	return WriteVersionField(raw, span, newVersion)
}
