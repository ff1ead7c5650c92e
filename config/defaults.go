package config

// ConfigFileNames lists the file names the loader recognizes, in precedence
// order.
var ConfigFileNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// DefaultConfigFileName is the canonical name written by `hookctl init`.
const DefaultConfigFileName = ".pre-commit-config.yaml"

// Languages supported by the consuming runner for hook environments.
var Languages = []string{
	"conda",
	"coursier",
	"dart",
	"docker",
	"docker_image",
	"dotnet",
	"fail",
	"golang",
	"haskell",
	"lua",
	"node",
	"perl",
	"pygrep",
	"python",
	"python_venv",
	"r",
	"ruby",
	"rust",
	"script",
	"swift",
	"system",
}

// Stages the consuming runner installs hooks into.
var Stages = []string{
	"commit-msg",
	"manual",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"prepare-commit-msg",
}

// LegacyStages maps deprecated stage names to their replacements. The runner
// still accepts them; the linter suggests migrating.
var LegacyStages = map[string]string{
	"commit":       "pre-commit",
	"merge-commit": "pre-merge-commit",
	"push":         "pre-push",
}

// MetaHooks are the hook ids a `repo: meta` block may reference.
var MetaHooks = []string{
	"check-hooks-apply",
	"check-useless-excludes",
	"identity",
}

// HookTypes lists valid values for default_install_hook_types.
var HookTypes = []string{
	"commit-msg",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"prepare-commit-msg",
}

// SetDefaults fills defaults the consuming runner would apply, so that
// downstream consumers (list, lint) see effective values.
func (c *Config) SetDefaults() {
	if len(c.DefaultInstallHookTypes) == 0 {
		c.DefaultInstallHookTypes = []string{"pre-commit"}
	}
	if len(c.DefaultStages) == 0 {
		c.DefaultStages = append([]string(nil), Stages...)
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.Name == "" && !repo.IsLocal() {
				hook.Name = hook.ID
			}
			if len(hook.Stages) == 0 {
				hook.Stages = append([]string(nil), c.DefaultStages...)
			}
		}
	}
}

func stagesWithLegacy() []string {
	all := append([]string(nil), Stages...)
	for legacy := range LegacyStages {
		all = append(all, legacy)
	}
	return all
}
