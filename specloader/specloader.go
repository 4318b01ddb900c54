// Package specloader resolves, reads, and validates the OpenAPI document a
// project is generated from.
//
// The parsing and validation themselves are delegated to kin-openapi; this
// package owns path resolution, Swagger 2.0 conversion, optional overlay
// application, and mapping every failure to a SpecificationError.
package specloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/speakeasy-api/openapi-overlay/pkg/overlay"
	"gopkg.in/yaml.v3"

	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/oaserrors"
)

// Specification is a loaded and validated OpenAPI document.
// It is never mutated after Load returns.
type Specification struct {
	// Path is the absolute path the document was read from.
	Path string
	// SourceVersion is the swagger/openapi version declared by the source.
	SourceVersion string
	// Converted is true when a Swagger 2.0 source was converted to OAS 3.
	Converted bool
	// Document is the parsed OAS 3 document.
	Document *openapi3.T

	canonical []byte
}

// JSON returns the canonical JSON encoding of the document. Keys are sorted,
// so equal documents always encode identically.
func (s *Specification) JSON() []byte {
	return bytes.Clone(s.canonical)
}

// Stats summarizes the document.
type Stats struct {
	Paths           int
	Operations      int
	SecuritySchemes int
}

// Stats counts paths, operations, and security schemes.
func (s *Specification) Stats() Stats {
	var st Stats
	if s.Document.Paths != nil {
		for _, item := range s.Document.Paths.Map() {
			st.Paths++
			st.Operations += len(item.Operations())
		}
	}
	if s.Document.Components != nil {
		st.SecuritySchemes = len(s.Document.Components.SecuritySchemes)
	}
	return st
}

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	workDir      string
	overlayPath  string
	externalRefs bool
	logger       logging.Logger
}

// WithWorkDir sets the directory relative paths are resolved against.
// Default: the process working directory.
func WithWorkDir(dir string) Option {
	return func(cfg *loadConfig) {
		cfg.workDir = dir
	}
}

// WithOverlay applies the OpenAPI Overlay at path before the document is parsed.
func WithOverlay(path string) Option {
	return func(cfg *loadConfig) {
		cfg.overlayPath = path
	}
}

// WithExternalRefs allows $ref to point at other files.
// Default: true
func WithExternalRefs(enabled bool) Option {
	return func(cfg *loadConfig) {
		cfg.externalRefs = enabled
	}
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(cfg *loadConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Load resolves path to an absolute location, reads it, and returns the
// validated document. Any failure is a *oaserrors.SpecificationError.
func Load(ctx context.Context, path string, opts ...Option) (*Specification, error) {
	cfg := &loadConfig{externalRefs: true, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	absPath, err := resolvePath(cfg.workDir, path)
	if err != nil {
		return nil, &oaserrors.SpecificationError{Path: path, Message: "resolving path", Cause: err}
	}
	log := cfg.logger.With("spec", absPath)

	data, err := os.ReadFile(absPath) //nolint:gosec // G304: reading the user-supplied specification is the purpose
	if err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "reading document", Cause: err}
	}
	log.Debug("read specification", "bytes", len(data))

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "decoding document", Cause: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "document is not a mapping"}
	}

	if cfg.overlayPath != "" {
		overlayPath, err := resolvePath(cfg.workDir, cfg.overlayPath)
		if err != nil {
			return nil, &oaserrors.SpecificationError{Path: absPath, Message: "resolving overlay path", Cause: err}
		}
		if err := applyOverlay(&root, overlayPath); err != nil {
			return nil, &oaserrors.SpecificationError{Path: absPath, Message: "applying overlay " + overlayPath, Cause: err}
		}
		log.Debug("applied overlay", "overlay", overlayPath)
	}

	version, isSwagger := sniffVersion(root.Content[0])
	if version == "" {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "missing 'openapi' or 'swagger' version field"}
	}

	jsonData, err := json.Marshal(nodeToValue(root.Content[0]))
	if err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "normalizing document", Cause: err}
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = cfg.externalRefs
	loader.Context = ctx

	if isSwagger {
		converted, err := convertSwagger(jsonData)
		if err != nil {
			return nil, &oaserrors.SpecificationError{Path: absPath, Message: "converting Swagger " + version, Cause: err}
		}
		// Reload the converted document so its references resolve like a
		// native OAS 3 document's.
		if jsonData, err = converted.MarshalJSON(); err != nil {
			return nil, &oaserrors.SpecificationError{Path: absPath, Message: "converting Swagger " + version, Cause: err}
		}
		log.Debug("converted swagger document", "from", version)
	}

	location := &url.URL{Path: filepath.ToSlash(absPath)}
	doc, err := loader.LoadFromDataWithPath(jsonData, location)
	if err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "parsing document", Cause: err}
	}

	// Plugins receive the document without access to its directory, so
	// external references become components of the document itself.
	doc.InternalizeRefs(ctx, nil)

	if err := doc.Validate(ctx); err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "validating document", Cause: err}
	}

	canonical, err := canonicalJSON(doc)
	if err != nil {
		return nil, &oaserrors.SpecificationError{Path: absPath, Message: "encoding document", Cause: err}
	}

	spec := &Specification{
		Path:          absPath,
		SourceVersion: version,
		Converted:     isSwagger,
		Document:      doc,
		canonical:     canonical,
	}
	st := spec.Stats()
	log.Debug("validated specification", "version", version, "paths", st.Paths, "operations", st.Operations)
	return spec, nil
}

// FromJSON decodes a canonical JSON document as produced by
// Specification.JSON. It is used by plugins receiving the document over the
// wire; the document was validated by the host and is not validated again.
func FromJSON(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("specloader: decoding document: %w", err)
	}
	return doc, nil
}

func resolvePath(workDir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		workDir = wd
	}
	return filepath.Abs(filepath.Join(workDir, path))
}

func applyOverlay(root *yaml.Node, overlayPath string) error {
	o, err := overlay.Parse(overlayPath)
	if err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return o.ApplyTo(root)
}

// sniffVersion returns the declared version and whether it is a Swagger 2.0 document.
func sniffVersion(m *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		switch m.Content[i].Value {
		case "openapi":
			return m.Content[i+1].Value, false
		case "swagger":
			return m.Content[i+1].Value, true
		}
	}
	return "", false
}

func convertSwagger(data []byte) (*openapi3.T, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&doc2)
}

// nodeToValue converts a YAML node to a value encoding/json can marshal.
// Mapping keys are always rendered as strings, so response codes such as
// 200 survive as "200".
func nodeToValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Tag == "!!merge" {
				mergeInto(m, n.Content[i+1])
				continue
			}
			m[key.Value] = nodeToValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			s = append(s, nodeToValue(c))
		}
		return s
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
}

func mergeInto(m map[string]any, src *yaml.Node) {
	if src.Kind == yaml.AliasNode {
		src = src.Alias
	}
	merged, ok := nodeToValue(src).(map[string]any)
	if !ok {
		return
	}
	for k, v := range merged {
		if _, exists := m[k]; !exists {
			m[k] = v
		}
	}
}

func canonicalJSON(doc *openapi3.T) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
