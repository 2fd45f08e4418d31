// Package manifest locates Cargo manifests and rewrites their version
// field in place. The write path is a pure substring substitution on the
// raw bytes: the scanner finds the exact span of the version literal and
// the rewriter replaces only those bytes, so comments, key order, quoting
// style, and line endings elsewhere in the file are never disturbed.
package manifest
