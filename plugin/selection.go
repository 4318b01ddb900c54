package plugin

import (
	"fmt"
	"path/filepath"
)

// Kind tags a Selection.
type Kind int

const (
	// Published selects the version-pinned published plugin.
	Published Kind = iota
	// Local selects an executable at a caller-supplied path.
	Local
)

func (k Kind) String() string {
	switch k {
	case Published:
		return "published"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	// PublishedName is the catalog name of the published plugin.
	PublishedName = "openapi-glue"
	// PublishedPin constrains which published version is used.
	PublishedPin = "^1.2.0"
	// DefaultLocalPath is used when the local override is enabled without a path.
	DefaultLocalPath = "./openapi-glue-plugin"
)

// Selection is the immutable choice between the published plugin and a
// local override.
type Selection struct {
	kind Kind
	path string
	pin  string
}

// Resolve selects the published plugin when localPlugin is empty, and the
// local plugin at localPlugin (made absolute against cwd) otherwise.
// It never fails: a bad path surfaces when the plugin is loaded.
func Resolve(localPlugin, cwd string) Selection {
	if localPlugin == "" {
		return Selection{kind: Published, pin: PublishedPin}
	}
	path := localPlugin
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return Selection{kind: Local, path: filepath.Clean(path)}
}

// PublishedSelection selects the published plugin matching pin.
func PublishedSelection(pin string) Selection {
	return Selection{kind: Published, pin: pin}
}

// Kind returns the selection tag.
func (s Selection) Kind() Kind { return s.kind }

// Path returns the local plugin path, empty for Published.
func (s Selection) Path() string { return s.path }

// Pin returns the published version constraint, empty for Local.
func (s Selection) Pin() string { return s.pin }

// IsLocal reports whether the local override is active.
func (s Selection) IsLocal() bool { return s.kind == Local }

// Banner returns the notice shown before generating with a local plugin,
// or "" for the published plugin.
func (s Selection) Banner() string {
	if !s.IsLocal() {
		return ""
	}
	return "Using local plugin at: " + s.path
}

func (s Selection) String() string {
	if s.IsLocal() {
		return "local " + s.path
	}
	return PublishedName + "@" + s.pin
}

// Loader returns the capability that loads this selection. catalog is only
// consulted for Published selections.
func (s Selection) Loader(catalog Catalog, opts ...LoaderOption) Loader {
	cfg := newLoaderConfig(opts)
	if s.IsLocal() {
		return &localLoader{sel: s, cfg: cfg}
	}
	return &publishedLoader{sel: s, catalog: catalog, cfg: cfg}
}
