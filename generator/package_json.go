package generator

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/erraggy/openapi-glue/plugin"
)

// Dependency ranges written to package.json.
const (
	fastifyRange            = "^5.2.0"
	fastifyCLIRange         = "^7.3.0"
	fastifyOpenapiGlueRange = "^4.8.0"
)

type packageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Directories     map[string]string `json:"directories"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

func packageJSON(p *project) ([]byte, error) {
	m := packageManifest{
		Name:        p.PackageName,
		Version:     "1.0.0",
		Description: comment(firstNonEmpty(p.Description, p.Title, "Generated by openapi-glue")),
		Type:        "module",
		Main:        "index.js",
		Scripts: map[string]string{
			"test": "node --test test/",
		},
		Directories: map[string]string{"test": "test"},
		Dependencies: map[string]string{
			"fastify-openapi-glue": fastifyOpenapiGlueRange,
		},
	}

	if p.Standalone {
		m.Main = "server.js"
		m.Scripts["start"] = "node server.js"
		m.Dependencies["fastify"] = fastifyRange
	} else {
		m.Scripts["start"] = "fastify start --log-level info --options index.js"
		m.Scripts["dev"] = "fastify start --log-level info --pretty-logs --watch --options index.js"
		m.Dependencies["fastify-cli"] = fastifyCLIRange
		m.DevDependencies = map[string]string{"fastify": fastifyRange}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortFiles(files []plugin.File) {
	slices.SortFunc(files, func(a, b plugin.File) int {
		return strings.Compare(a.Path, b.Path)
	})
}
