package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/openapi-glue/internal/naming"
	"github.com/erraggy/openapi-glue/params"
)

// methodOrder fixes the order operations of one path are emitted in.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
	http.MethodTrace,
}

// requestLocations maps a parameter location to the fastify request field
// it is available on.
var requestLocations = map[string]string{
	openapi3.ParameterInQuery:  "query",
	openapi3.ParameterInPath:   "params",
	openapi3.ParameterInHeader: "headers",
	openapi3.ParameterInCookie: "cookies",
}

// project is the template data for one generated project.
type project struct {
	Name        string
	PackageName string
	Type        params.ProjectType
	Standalone  bool
	Header      string

	Title       string
	APIVersion  string
	Description string

	Operations      []operation
	SecuritySchemes []securityScheme

	// Specification is the indented openApi.json content.
	Specification []byte
}

type operation struct {
	// ID is the operationId as it appears in openApi.json.
	ID string
	// Key is ID rendered as a JavaScript method name.
	Key         string
	Derived     bool
	Method      string
	Path        string
	FastifyPath string
	Summary     string
	Inputs      []input
	Responses   []response
	Security    []string
}

// input lists the parameters available on one request field.
type input struct {
	Field string
	Names []string
}

type response struct {
	Code        string
	Description string
}

type securityScheme struct {
	Name        string
	Key         string
	Type        string
	Detail      string
	Description string
}

func buildProject(doc *openapi3.T, name string, t params.ProjectType, header string) (*project, error) {
	p := &project{
		Name:        name,
		PackageName: packageName(name),
		Type:        t,
		Standalone:  t == params.TypeStandaloneJS,
		Header:      header,
	}
	if doc.Info != nil {
		p.Title = doc.Info.Title
		p.APIVersion = doc.Info.Version
		p.Description = doc.Info.Description
	}

	p.Operations = collectOperations(doc)
	p.SecuritySchemes = collectSecuritySchemes(doc)

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding openApi.json: %w", err)
	}
	if p.Specification, err = indentJSON(raw); err != nil {
		return nil, fmt.Errorf("encoding openApi.json: %w", err)
	}
	return p, nil
}

// collectOperations returns operations sorted by path and method. Missing
// operationIds are derived and stored back into doc.
func collectOperations(doc *openapi3.T) []operation {
	if doc.Paths == nil {
		return nil
	}

	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	used := make(map[string]bool)
	for _, path := range paths {
		for _, method := range methodOrder {
			if op := items[path].GetOperation(method); op != nil && op.OperationID != "" {
				used[op.OperationID] = true
			}
		}
	}

	var ops []operation
	for _, path := range paths {
		item := items[path]
		for _, method := range methodOrder {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}

			derived := false
			if op.OperationID == "" {
				op.OperationID = uniqueName(naming.JSIdentifier(naming.OperationName(method, path)), used)
				derived = true
			}

			ops = append(ops, operation{
				ID:          op.OperationID,
				Key:         methodKey(op.OperationID),
				Derived:     derived,
				Method:      method,
				Path:        path,
				FastifyPath: FastifyPath(path),
				Summary:     firstNonEmpty(op.Summary, op.Description),
				Inputs:      collectInputs(item.Parameters, op),
				Responses:   collectResponses(op),
				Security:    collectSecurity(doc, op),
			})
		}
	}
	return ops
}

func collectInputs(pathParams openapi3.Parameters, op *openapi3.Operation) []input {
	// Operation parameters override path item parameters with the same
	// location and name.
	byField := make(map[string][]string)
	seen := make(map[string]bool)
	add := func(list openapi3.Parameters) {
		for _, ref := range list {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := ref.Value
			field, ok := requestLocations[p.In]
			if !ok {
				continue
			}
			key := p.In + "\x00" + p.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			byField[field] = append(byField[field], p.Name)
		}
	}
	add(op.Parameters)
	add(pathParams)

	var inputs []input
	for _, field := range []string{"query", "params", "headers", "cookies"} {
		names := byField[field]
		if len(names) == 0 {
			continue
		}
		slices.Sort(names)
		inputs = append(inputs, input{Field: field, Names: names})
	}
	if op.RequestBody != nil {
		inputs = append(inputs, input{Field: "body"})
	}
	return inputs
}

func collectResponses(op *openapi3.Operation) []response {
	if op.Responses == nil {
		return nil
	}
	m := op.Responses.Map()
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]response, 0, len(codes))
	for _, code := range codes {
		r := response{Code: code}
		if ref := m[code]; ref != nil && ref.Value != nil && ref.Value.Description != nil {
			r.Description = *ref.Value.Description
		}
		out = append(out, r)
	}
	return out
}

// collectSecurity returns the scheme names guarding op, falling back to the
// document-wide requirements.
func collectSecurity(doc *openapi3.T, op *openapi3.Operation) []string {
	reqs := doc.Security
	if op.Security != nil {
		reqs = *op.Security
	}
	var names []string
	for _, req := range reqs {
		for name := range req {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

func collectSecuritySchemes(doc *openapi3.T) []securityScheme {
	if doc.Components == nil || len(doc.Components.SecuritySchemes) == 0 {
		return nil
	}
	schemes := doc.Components.SecuritySchemes
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]securityScheme, 0, len(names))
	for _, name := range names {
		s := securityScheme{Name: name, Key: methodKey(name)}
		if ref := schemes[name]; ref != nil && ref.Value != nil {
			v := ref.Value
			s.Type = v.Type
			s.Description = v.Description
			switch v.Type {
			case "apiKey":
				s.Detail = fmt.Sprintf("%s in %s", v.Name, v.In)
			case "http":
				s.Detail = v.Scheme
			case "openIdConnect":
				s.Detail = v.OpenIdConnectUrl
			}
		}
		out = append(out, s)
	}
	return out
}

var pathParamPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// FastifyPath converts an OpenAPI path template to fastify route syntax:
// /pets/{petId} becomes /pets/:petId.
func FastifyPath(path string) string {
	return pathParamPattern.ReplaceAllString(path, ":$1")
}

// methodKey renders name as a class method name: a bare identifier when
// possible, a string literal otherwise.
func methodKey(name string) string {
	if naming.IsJSIdentifier(name) {
		return name
	}
	return jsString(name)
}

// uniqueName returns base, or base with the smallest numeric suffix not in
// used, and records the result.
func uniqueName(base string, used map[string]bool) string {
	name := base
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	used[name] = true
	return name
}

// packageName makes a project name acceptable as an npm package name.
func packageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s := strings.TrimLeft(b.String(), "._")
	if s == "" {
		return "openapi-glue-project"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// indentJSON re-encodes raw with sorted keys, two-space indentation, and
// without HTML escaping.
func indentJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
