package plugin

import (
	"fmt"
	"slices"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

// Entry is one published plugin version.
type Entry struct {
	Name string
	// Version is a "v"-prefixed semantic version.
	Version string
	// New creates an in-process instance of the plugin.
	New func() Generator
}

// Catalog is a registry of published plugin versions.
type Catalog []Entry

// Lookup returns the highest version of name satisfying constraint.
func (c Catalog) Lookup(name, constraint string) (Entry, error) {
	cons, err := mmsemver.NewConstraint(constraint)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	var (
		matches   []Entry
		available []string
	)
	for _, e := range c {
		if e.Name != name {
			continue
		}
		available = append(available, e.Version)
		v, err := mmsemver.NewVersion(e.Version)
		if err != nil || !semver.IsValid(e.Version) {
			continue
		}
		if cons.Check(v) {
			matches = append(matches, e)
		}
	}

	if len(matches) == 0 {
		if len(available) == 0 {
			return Entry{}, fmt.Errorf("no published plugin named %q", name)
		}
		return Entry{}, fmt.Errorf("no version of %s satisfies %q (available: %s)",
			name, constraint, strings.Join(available, ", "))
	}

	slices.SortStableFunc(matches, func(a, b Entry) int {
		return semver.Compare(b.Version, a.Version)
	})
	return matches[0], nil
}
