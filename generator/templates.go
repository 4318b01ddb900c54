package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/erraggy/openapi-glue/plugin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

var templateFuncs = template.FuncMap{
	"jsString": jsString,
	"comment":  comment,
	"join":     strings.Join,
}

// projectFile maps a generated path to the template rendering it.
type projectFile struct {
	path       string
	template   string
	standalone bool
}

// projectFiles is sorted by path.
var projectFiles = []projectFile{
	{path: "README.md", template: "readme.md.tmpl"},
	{path: "index.js", template: "index.js.tmpl"},
	{path: "security.js", template: "security.js.tmpl"},
	{path: "server.js", template: "server.js.tmpl", standalone: true},
	{path: "service.js", template: "service.js.tmpl"},
	{path: "test/test-plugin.js", template: "test-plugin.js.tmpl"},
}

// render produces the project files sorted by path.
func render(p *project) ([]plugin.File, error) {
	files := make([]plugin.File, 0, len(projectFiles)+2)
	for _, f := range projectFiles {
		if f.standalone && !p.Standalone {
			continue
		}
		content, err := executeTemplate(f.template, p)
		if err != nil {
			return nil, err
		}
		files = append(files, plugin.File{Path: f.path, Content: content})
	}

	pkg, err := packageJSON(p)
	if err != nil {
		return nil, err
	}
	files = append(files,
		plugin.File{Path: "openApi.json", Content: p.Specification},
		plugin.File{Path: "package.json", Content: pkg},
	)
	sortFiles(files)
	return files, nil
}

func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsString renders s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(buf.String(), "\n")
}

// comment collapses s to a single line so it is safe inside a // comment.
func comment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
