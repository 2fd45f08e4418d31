package release

import (
	"context"

	"github.com/indaco/cargobump/internal/core"
)

// MockGit is a mock implementation of core.GitOperations for testing.
type MockGit struct {
	StageFilesFn           func(files ...string) error
	CommitFn               func(message string) error
	CreateAnnotatedTagFn   func(name, message string) error
	CreateLightweightTagFn func(name string) error
	TagExistsFn            func(name string) (bool, error)
}

// Verify MockGit implements core.GitOperations.
var _ core.GitOperations = (*MockGit)(nil)

// StageFiles implements core.GitOperations.
func (m *MockGit) StageFiles(files ...string) error {
	if m.StageFilesFn != nil {
		return m.StageFilesFn(files...)
	}
	return nil
}

// Commit implements core.GitOperations.
func (m *MockGit) Commit(message string) error {
	if m.CommitFn != nil {
		return m.CommitFn(message)
	}
	return nil
}

// CreateAnnotatedTag implements core.GitOperations.
func (m *MockGit) CreateAnnotatedTag(name, message string) error {
	if m.CreateAnnotatedTagFn != nil {
		return m.CreateAnnotatedTagFn(name, message)
	}
	return nil
}

// CreateLightweightTag implements core.GitOperations.
func (m *MockGit) CreateLightweightTag(name string) error {
	if m.CreateLightweightTagFn != nil {
		return m.CreateLightweightTagFn(name)
	}
	return nil
}

// TagExists implements core.GitOperations.
func (m *MockGit) TagExists(name string) (bool, error) {
	if m.TagExistsFn != nil {
		return m.TagExistsFn(name)
	}
	return false, nil
}

// MockBuild is a mock implementation of core.BuildRunner for testing.
type MockBuild struct {
	RunBuildFn func(ctx context.Context, dir string) error
}

// Verify MockBuild implements core.BuildRunner.
var _ core.BuildRunner = (*MockBuild)(nil)

// RunBuild implements core.BuildRunner.
func (m *MockBuild) RunBuild(ctx context.Context, dir string) error {
	if m.RunBuildFn != nil {
		return m.RunBuildFn(ctx, dir)
	}
	return nil
}
