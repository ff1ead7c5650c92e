// Package revs plans and applies revision upgrades for remote repository
// blocks. A configuration's hook entries are written once and mutated only
// to move a pin forward; this package is that mutation.
package revs

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/git"
	"github.com/hooktools/core/logging"
)

// frozenCommentPrefix marks a rev that was frozen to a commit SHA; the
// comment records the tag the SHA came from.
const frozenCommentPrefix = "# frozen: "

// TagLister lists the tags a remote repository advertises.
type TagLister interface {
	ListTags(ctx context.Context, url string) ([]git.Tag, error)
}

// Options control how upgrades are planned.
type Options struct {
	// Freeze pins revs to commit SHAs instead of tag names, recording the
	// tag in a trailing comment.
	Freeze bool
	// Repo, when non-empty, limits planning to the block with this URL.
	Repo string
}

// Bump is one planned revision upgrade.
type Bump struct {
	RepoURL string
	From    string
	To      string
	// FrozenTag is set when To is a commit SHA standing in for a tag.
	FrozenTag string
}

func (b Bump) String() string {
	if b.FrozenTag != "" {
		return fmt.Sprintf("%s: %s -> %s (frozen: %s)", b.RepoURL, b.From, b.To, b.FrozenTag)
	}
	return fmt.Sprintf("%s: %s -> %s", b.RepoURL, b.From, b.To)
}

// Planner computes revision upgrades against remote tag listings.
type Planner struct {
	remote TagLister
}

// NewPlanner creates a Planner that queries remotes with the given lister.
func NewPlanner(remote TagLister) *Planner {
	return &Planner{remote: remote}
}

// Plan proposes an upgrade for every remote block whose newest version tag
// is ahead of the pinned rev. Failing remotes do not abort the whole run;
// their errors are joined and returned alongside the successful bumps.
func (p *Planner) Plan(ctx context.Context, doc *config.Document, opts Options) ([]Bump, error) {
	log := logging.NewLogger("revs")

	var bumps []Bump
	var errs []error

	for _, entry := range doc.RevEntries() {
		if opts.Repo != "" && opts.Repo != entry.RepoURL {
			continue
		}

		tags, err := p.remote.ListTags(ctx, entry.RepoURL)
		if err != nil {
			errs = append(errs, errors.Wrap(err, errors.ErrCodeRevUnresolved,
				fmt.Sprintf("failed to list tags for %s", entry.RepoURL)).
				WithDetail("repo", entry.RepoURL))
			continue
		}

		current := entry.RevNode.Value
		latest, ok := latestVersionTag(tags)
		if !ok {
			log.WithField("repo", entry.RepoURL).Debug("No version-shaped tags on remote")
			continue
		}

		if opts.Freeze {
			// Freezing rewrites even an up-to-date tag pin to its commit SHA.
			to := latest.CommitSHA()
			if current == to {
				continue
			}
			bumps = append(bumps, Bump{
				RepoURL:   entry.RepoURL,
				From:      current,
				To:        to,
				FrozenTag: latest.Name,
			})
			continue
		}

		if !isNewer(current, latest.Name) {
			continue
		}
		bumps = append(bumps, Bump{RepoURL: entry.RepoURL, From: current, To: latest.Name})
	}

	return bumps, stderrors.Join(errs...)
}

// Apply rewrites the rev scalars for the planned bumps. Only the rev nodes
// (and their trailing comments) change; the rest of the document keeps its
// structure.
func Apply(doc *config.Document, bumps []Bump) {
	byRepo := make(map[string]Bump, len(bumps))
	for _, bump := range bumps {
		byRepo[bump.RepoURL] = bump
	}

	for _, entry := range doc.RevEntries() {
		bump, ok := byRepo[entry.RepoURL]
		if !ok {
			continue
		}

		entry.RevNode.Value = bump.To
		entry.RevNode.Tag = "!!str"

		switch {
		case bump.FrozenTag != "":
			entry.RevNode.LineComment = frozenCommentPrefix + bump.FrozenTag
		case strings.HasPrefix(entry.RevNode.LineComment, frozenCommentPrefix):
			entry.RevNode.LineComment = ""
		}
	}
}

// latestVersionTag picks the highest release tag, ignoring tags that do not
// parse as versions and pre-releases.
func latestVersionTag(tags []git.Tag) (git.Tag, bool) {
	var best git.Tag
	var bestVersion *semver.Version

	for _, tag := range tags {
		v, err := semver.NewVersion(tag.Name)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			bestVersion = v
			best = tag
		}
	}

	return best, bestVersion != nil
}

// isNewer reports whether candidate is ahead of current. When current does
// not parse as a version (e.g. a frozen SHA), any differing candidate is
// considered newer.
func isNewer(current, candidate string) bool {
	if current == candidate {
		return false
	}

	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return true
	}
	candidateVersion, err := semver.NewVersion(candidate)
	if err != nil {
		return false
	}

	return candidateVersion.GreaterThan(currentVersion)
}
