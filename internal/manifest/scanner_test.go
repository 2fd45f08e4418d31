package manifest

import (
	"errors"
	"strings"
	"testing"
)

const sampleManifest = `# top comment
[package]
name = "demo"     # package name
version = "0.1.0"  # do not edit
edition = "2021"

[dependencies]
semver = { version = "1.0.0" }
serde = "1.0"

[dev-dependencies.tokio]
version = "1.38.0"
`

/* ------------------------------------------------------------------------- */
/* READ VERSION FIELD TESTS                                                  */
/* ------------------------------------------------------------------------- */

func TestReadVersionField(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValue string
		wantErr   error
	}{
		{
			name:      "realistic manifest",
			content:   sampleManifest,
			wantValue: "0.1.0",
		},
		{
			name:      "version key before name key",
			content:   "[package]\nversion = \"2.3.4\"\nname = \"x\"\n",
			wantValue: "2.3.4",
		},
		{
			name:      "single quoted literal",
			content:   "[package]\nversion = '1.2.3'\n",
			wantValue: "1.2.3",
		},
		{
			name:      "indented key",
			content:   "[package]\n  version = \"9.9.9\"\n",
			wantValue: "9.9.9",
		},
		{
			name:    "no package table",
			content: "[dependencies]\nversion = \"1.0.0\"\n",
			wantErr: ErrVersionFieldNotFound,
		},
		{
			name:    "package table without version",
			content: "[package]\nname = \"demo\"\n",
			wantErr: ErrVersionFieldNotFound,
		},
		{
			name:    "version key in nested package table ignored",
			content: "[package.metadata]\nversion = \"1.0.0\"\n",
			wantErr: ErrVersionFieldNotFound,
		},
		{
			name:    "versions key is not version",
			content: "[package]\nversions = \"1.0.0\"\n",
			wantErr: ErrVersionFieldNotFound,
		},
		{
			name:    "empty document",
			content: "",
			wantErr: ErrVersionFieldNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, span, err := ReadVersionField([]byte(tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value != tt.wantValue {
				t.Errorf("got value %q, want %q", value, tt.wantValue)
			}

			// The span must cover the quoted literal exactly.
			got := tt.content[span.Start:span.End]
			if got != `"`+tt.wantValue+`"` && got != `'`+tt.wantValue+`'` {
				t.Errorf("span covers %q, want quoted %q", got, tt.wantValue)
			}
		})
	}
}

func TestReadVersionField_NonStringValue(t *testing.T) {
	_, _, err := ReadVersionField([]byte("[package]\nversion = 1\n"))
	if err == nil {
		t.Fatal("expected error for non-string version value, got nil")
	}
}

func TestReadVersionField_CRLF(t *testing.T) {
	content := "[package]\r\nname = \"demo\"\r\nversion = \"0.1.0\"\r\n"
	value, span, err := ReadVersionField([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "0.1.0" {
		t.Errorf("got %q", value)
	}
	if got := content[span.Start:span.End]; got != `"0.1.0"` {
		t.Errorf("span covers %q", got)
	}
}

/* ------------------------------------------------------------------------- */
/* WRITE VERSION FIELD TESTS                                                 */
/* ------------------------------------------------------------------------- */

func TestWriteVersionField_ByteExact(t *testing.T) {
	_, span, err := ReadVersionField([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	updated, err := WriteVersionField([]byte(sampleManifest), span, "0.2.0")
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	want := strings.Replace(sampleManifest, `version = "0.1.0"  # do not edit`, `version = "0.2.0"  # do not edit`, 1)
	if string(updated) != want {
		t.Errorf("rewrite is not byte-exact:\ngot:\n%s\nwant:\n%s", updated, want)
	}

	// Everything outside the span must be byte-identical to the input.
	if got := string(updated[:span.Start]); got != sampleManifest[:span.Start] {
		t.Error("bytes before the span changed")
	}
	if got := string(updated[len(updated)-(len(sampleManifest)-span.End):]); got != sampleManifest[span.End:] {
		t.Error("bytes after the span changed")
	}
}

func TestWriteVersionField_PreservesQuoteStyle(t *testing.T) {
	content := "[package]\nversion = '1.2.3'\n"
	_, span, err := ReadVersionField([]byte(content))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	updated, err := WriteVersionField([]byte(content), span, "1.2.4")
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if string(updated) != "[package]\nversion = '1.2.4'\n" {
		t.Errorf("quote style not preserved: %q", updated)
	}
}

func TestWriteVersionField_PreservesCRLF(t *testing.T) {
	content := "[package]\r\nversion = \"0.1.0\"\r\n"
	_, span, err := ReadVersionField([]byte(content))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	updated, err := WriteVersionField([]byte(content), span, "0.1.1")
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if string(updated) != "[package]\r\nversion = \"0.1.1\"\r\n" {
		t.Errorf("CRLF not preserved: %q", updated)
	}
}

func TestWriteVersionField_InvalidSpan(t *testing.T) {
	raw := []byte(`version = "1.0.0"`)

	tests := []struct {
		name string
		span Span
	}{
		{name: "negative start", span: Span{Start: -1, End: 5}},
		{name: "end past document", span: Span{Start: 0, End: 1000}},
		{name: "span too short", span: Span{Start: 0, End: 1}},
		{name: "span not on quotes", span: Span{Start: 0, End: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WriteVersionField(raw, tt.span, "2.0.0"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

/* ------------------------------------------------------------------------- */
/* PARSE PACKAGE TESTS                                                       */
/* ------------------------------------------------------------------------- */

func TestParsePackage(t *testing.T) {
	pkg, err := ParsePackage([]byte(sampleManifest), "0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Name != "demo" || pkg.Version != "0.1.0" {
		t.Errorf("got %+v", pkg)
	}
}

func TestParsePackage_ScanMismatch(t *testing.T) {
	_, err := ParsePackage([]byte(sampleManifest), "9.9.9")
	if err == nil {
		t.Fatal("expected mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParsePackage_InvalidTOML(t *testing.T) {
	_, err := ParsePackage([]byte("[package\nname = "), "")
	if err == nil {
		t.Fatal("expected TOML error, got nil")
	}
}

/* ------------------------------------------------------------------------- */
/* LOCKFILE TESTS                                                            */
/* ------------------------------------------------------------------------- */

const sampleLockfile = `# This file is automatically @generated by Cargo.
# It is not intended for manual editing.
version = 3

[[package]]
name = "anyhow"
version = "1.0.86"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "demo"
version = "0.1.0"
dependencies = [
 "anyhow",
]

[[package]]
name = "other"
version = "0.1.0"
`

func TestReplacePackageVersion(t *testing.T) {
	updated, err := ReplacePackageVersion([]byte(sampleLockfile), "demo", "0.1.0", "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Replace(sampleLockfile, "name = \"demo\"\nversion = \"0.1.0\"", "name = \"demo\"\nversion = \"0.2.0\"", 1)
	if string(updated) != want {
		t.Errorf("lockfile rewrite not byte-exact:\ngot:\n%s\nwant:\n%s", updated, want)
	}

	// The "other" entry shares the old version string and must be untouched.
	if !strings.Contains(string(updated), "name = \"other\"\nversion = \"0.1.0\"") {
		t.Error("unrelated package entry was modified")
	}
}

func TestReplacePackageVersion_NotFound(t *testing.T) {
	tests := []struct {
		name       string
		pkg        string
		oldVersion string
	}{
		{name: "unknown package", pkg: "missing", oldVersion: "0.1.0"},
		{name: "version mismatch", pkg: "demo", oldVersion: "9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReplacePackageVersion([]byte(sampleLockfile), tt.pkg, tt.oldVersion, "1.0.0")
			if !errors.Is(err, ErrPackageNotFound) {
				t.Errorf("expected ErrPackageNotFound, got %v", err)
			}
		})
	}
}

func TestFindPackageVersionSpan_LastBlock(t *testing.T) {
	// A match in the final block is only visible at EOF.
	span, err := FindPackageVersionSpan([]byte(sampleLockfile), "other", "0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sampleLockfile[span.Start:span.End]; got != `"0.1.0"` {
		t.Errorf("span covers %q", got)
	}
}

func TestFindPackageVersionSpan_TopLevelVersionKeyIgnored(t *testing.T) {
	// The bare `version = 3` format marker must never be treated as a
	// package entry.
	_, err := FindPackageVersionSpan([]byte("version = 3\n"), "demo", "3")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}
