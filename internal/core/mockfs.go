package core

import (
	"context"
	"io/fs"
	"os"
	"time"
)

// MockFileSystem is an in-memory FileSystem implementation for testing.
// Error fields, when set, are returned by the corresponding operation.
type MockFileSystem struct {
	files map[string][]byte

	// ReadErr, when non-nil, is returned by every ReadFile call.
	ReadErr error

	// WriteErr, when non-nil, is returned by every WriteFile call.
	WriteErr error

	// StatErr, when non-nil, is returned by every Stat call.
	StatErr error
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: make(map[string][]byte)}
}

// SetFile stores data under path.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.files[path] = data
}

// GetFile returns the stored data for path and whether it exists.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	data, ok := m.files[path]
	return data, ok
}

// ReadFile implements FileSystem.
func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

// WriteFile implements FileSystem.
func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, _ fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.files[path] = data
	return nil
}

// Stat implements FileSystem.
func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return mockFileInfo{name: path, size: int64(len(data))}, nil
}

// mockFileInfo is a minimal fs.FileInfo for mocked files.
type mockFileInfo struct {
	name string
	size int64
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return PermFile }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return false }
func (fi mockFileInfo) Sys() any           { return nil }
