package orchestrator

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/erraggy/openapi-glue/internal/fileutil"
	"github.com/erraggy/openapi-glue/oaserrors"
)

// Manifest maps a generated relative path to the sha256 hex digest of its
// content, or to the content itself in content mode.
type Manifest map[string]string

// Paths returns the manifest keys in sorted order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Result is the outcome of GenerateProject.
type Result struct {
	// ChecksumOnly is true when nothing was written.
	ChecksumOnly bool
	// Directory is the project directory, written or not.
	Directory string
	// Files lists the generated relative paths in sorted order.
	Files []string
	// Manifest is set in checksum-only mode.
	Manifest Manifest
	// ContentManifest is true when Manifest holds raw contents.
	ContentManifest bool
	// Plugin identifies the plugin that generated the files.
	Plugin string
}

// Sink receives the generated files of one project.
type Sink interface {
	// Prepare runs before the plugin is loaded. It must not leave anything
	// behind on disk.
	Prepare() error
	// Put records one file. path is relative and slash-separated.
	Put(path string, content []byte) error
	// Result reports what was recorded.
	Result() *Result
}

// diskSink writes files under dir, overwriting existing ones. dir is
// created by the first Put, so a run that fails before producing files
// leaves the base directory untouched.
type diskSink struct {
	baseDir string
	dir     string
	created bool
	files   []string
}

func newDiskSink(baseDir, projectName string) *diskSink {
	return &diskSink{baseDir: baseDir, dir: filepath.Join(baseDir, projectName)}
}

// Prepare checks the base directory exists.
func (s *diskSink) Prepare() error {
	ok, err := fileutil.IsDir(s.baseDir)
	if err != nil {
		msg := "cannot access base directory"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "base directory does not exist"
		}
		return &oaserrors.WriteError{Path: s.baseDir, Message: msg, Cause: err}
	}
	if !ok {
		return &oaserrors.WriteError{Path: s.baseDir, Message: "base directory is not a directory"}
	}
	return nil
}

func (s *diskSink) Put(path string, content []byte) error {
	if !s.created {
		if err := fileutil.WriteDir(s.dir); err != nil {
			return &oaserrors.WriteError{Path: s.dir, Message: "creating project directory", Cause: err}
		}
		s.created = true
	}
	target := filepath.Join(s.dir, filepath.FromSlash(path))
	if err := fileutil.WriteFileAll(target, content); err != nil {
		return &oaserrors.WriteError{Path: target, Message: "writing file", Cause: err}
	}
	s.files = append(s.files, path)
	return nil
}

func (s *diskSink) Result() *Result {
	files := slices.Clone(s.files)
	slices.Sort(files)
	return &Result{Directory: s.dir, Files: files}
}

// checksumSink records a manifest and never touches the filesystem.
type checksumSink struct {
	dir      string
	content  bool
	manifest Manifest
}

func newChecksumSink(dir string, content bool) *checksumSink {
	return &checksumSink{dir: dir, content: content, manifest: make(Manifest)}
}

func (s *checksumSink) Prepare() error { return nil }

func (s *checksumSink) Put(path string, content []byte) error {
	if s.content {
		s.manifest[path] = string(content)
		return nil
	}
	sum := sha256.Sum256(content)
	s.manifest[path] = hex.EncodeToString(sum[:])
	return nil
}

func (s *checksumSink) Result() *Result {
	return &Result{
		ChecksumOnly:    true,
		Directory:       s.dir,
		Files:           s.manifest.Paths(),
		Manifest:        s.manifest,
		ContentManifest: s.content,
	}
}

var (
	_ Sink = (*diskSink)(nil)
	_ Sink = (*checksumSink)(nil)
)
