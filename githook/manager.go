// Package githook installs and removes the git hook shims that invoke
// pre-commit for a repository's configured hook types.
package githook

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/git"
	"github.com/hooktools/core/logging"
)

// ownershipMarker identifies hook scripts written by hookctl. Hooks
// without this marker are never overwritten in place or removed.
const ownershipMarker = "hookctl git hook"

const hookScriptTemplate = `#!/bin/sh
# hookctl git hook - {{.HookType}}
# Auto-generated, do not edit directly

if command -v pre-commit >/dev/null 2>&1; then
    exec pre-commit run --hook-stage {{.HookType}} "$@"
fi

echo "pre-commit not found; skipping {{.HookType}} hook" >&2
exit 0
`

// backupSuffix is appended to a foreign hook before ours is written.
const backupSuffix = ".legacy"

// Manager installs hook shims into a repository's .git/hooks directory.
type Manager struct {
	logger *logrus.Entry
}

// NewManager creates a hook manager.
func NewManager() *Manager {
	return &Manager{logger: logging.NewLogger("githook")}
}

// Install writes a shim for each hook type into the repository containing
// dir. Existing hooks not written by hookctl are backed up first.
func (m *Manager) Install(ctx context.Context, dir string, hookTypes []string) error {
	root, err := git.WorkTreeRoot(ctx, dir)
	if err != nil {
		return err
	}

	hooksDir := filepath.Join(root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodePermissionDenied, "create hooks directory")
	}

	for _, hookType := range hookTypes {
		if err := m.installHook(hooksDir, hookType); err != nil {
			return err
		}
		m.logger.WithField("hook", hookType).Info("Installed git hook")
	}

	return nil
}

// Uninstall removes hookctl-owned shims for the given hook types and
// restores any backed-up hooks. Foreign hooks are left untouched.
func (m *Manager) Uninstall(ctx context.Context, dir string, hookTypes []string) error {
	root, err := git.WorkTreeRoot(ctx, dir)
	if err != nil {
		return err
	}

	hooksDir := filepath.Join(root, ".git", "hooks")

	for _, hookType := range hookTypes {
		hookPath := filepath.Join(hooksDir, hookType)

		if _, err := os.Stat(hookPath); os.IsNotExist(err) {
			continue
		}

		if !isOwnedHook(hookPath) {
			return errors.HookNotOwned(hookPath)
		}

		if err := os.Remove(hookPath); err != nil {
			return errors.Wrap(err, errors.ErrCodePermissionDenied, fmt.Sprintf("remove %s hook", hookType))
		}

		// Restore a backed-up hook if one exists.
		backupPath := hookPath + backupSuffix
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return errors.Wrap(err, errors.ErrCodePermissionDenied, fmt.Sprintf("restore %s hook", hookType))
			}
			m.logger.WithField("hook", hookType).Info("Restored previous git hook")
		} else {
			m.logger.WithField("hook", hookType).Info("Removed git hook")
		}
	}

	return nil
}

func (m *Manager) installHook(hooksDir, hookType string) error {
	hookPath := filepath.Join(hooksDir, hookType)

	if _, err := os.Stat(hookPath); err == nil {
		if !isOwnedHook(hookPath) {
			backupPath := hookPath + backupSuffix
			if err := os.Rename(hookPath, backupPath); err != nil {
				return errors.Wrap(err, errors.ErrCodePermissionDenied, fmt.Sprintf("back up existing %s hook", hookType))
			}
			m.logger.WithField("backup", backupPath).Warn("Existing hook moved aside")
		}
	}

	tmpl, err := template.New(hookType).Parse(hookScriptTemplate)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "parse hook template")
	}

	var buf bytes.Buffer
	data := struct{ HookType string }{HookType: hookType}
	if err := tmpl.Execute(&buf, data); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "render hook template")
	}

	// Git hooks must be executable.
	// #nosec G306
	if err := os.WriteFile(hookPath, buf.Bytes(), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodePermissionDenied, fmt.Sprintf("write %s hook", hookType))
	}

	return nil
}

func isOwnedHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte(ownershipMarker))
}
