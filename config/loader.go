package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/git"
	"github.com/hooktools/core/logging"
)

// Load reads and parses a pre-commit configuration file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeConfigNotFound, "configuration file not found: "+path).
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	doc, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// LoadFromBytes parses a configuration document and validates it against the
// embedded JSON Schema. Semantic validation is a separate, explicit step.
func LoadFromBytes(data []byte) (*Document, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}

	if err := validator.Validate(doc.Raw()); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaValidation, "schema validation failed")
	}

	return doc, nil
}

// LoadDefault finds and loads the configuration starting from the current
// directory.
func LoadDefault() (*Document, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom finds and loads the configuration starting from the given
// directory.
func LoadFrom(startDir string) (*Document, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logging.NewLogger("config").WithField("path", path).Debug("Loading configuration")
	return Load(path)
}

// FindConfigFile searches for a pre-commit configuration file:
// 1. Current directory up to filesystem root
// 2. Git repository root (if in a git repo)
func FindConfigFile(startDir string) (string, error) {
	// 1. Search from the start directory up to the filesystem root
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// 2. Check the git repository root in case the walk started outside the
	// work tree (e.g. inside a linked worktree's admin dir).
	if gitRoot, err := git.WorkTreeRoot(context.Background(), startDir); err == nil && gitRoot != "" {
		for _, name := range ConfigFileNames {
			path := filepath.Join(gitRoot, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", errors.New(errors.ErrCodeConfigNotFound, "no pre-commit configuration found").
		WithDetail("searchPath", startDir)
}
