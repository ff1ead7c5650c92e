// Package testutil provides helpers shared by tests across the module.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test if git is not available.
func RequireGit(t *testing.T) {
	t.Helper()

	cmd := exec.Command("git", "version")
	if err := cmd.Run(); err != nil {
		t.Skip("git not available")
	}
}

// InitGitRepo initializes a git repository in the given directory.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	for _, args := range [][]string{
		{"init"},
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			t.Fatalf("git %v failed: %v", args, err)
		}
	}
}

// WriteConfig writes content as a .pre-commit-config.yaml in dir and
// returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".pre-commit-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
