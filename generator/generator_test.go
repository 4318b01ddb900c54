package generator

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/openapi-glue/internal/testutil"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
	"github.com/erraggy/openapi-glue/specloader"
)

func loadPetstore(t *testing.T) []byte {
	t.Helper()
	spec, err := specloader.Load(context.Background(), testutil.WritePetstore(t))
	require.NoError(t, err)
	return spec.JSON()
}

func generate(t *testing.T, g *Generator, projectType string, spec []byte) map[string]string {
	t.Helper()
	resp, err := g.Generate(context.Background(), &plugin.GenerateRequest{
		ProjectType:   projectType,
		ProjectName:   "petstore",
		Specification: spec,
	})
	require.NoError(t, err)

	files := make(map[string]string, len(resp.Files))
	for _, f := range resp.Files {
		files[f.Path] = string(f.Content)
	}
	return files
}

func TestDescribe(t *testing.T) {
	desc, err := New().Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "openapi-glue", desc.Name)
	assert.Equal(t, Version, desc.Version)
	assert.Equal(t, []string{"javascript", "standaloneJS"}, desc.Types)
}

func TestPublishedCatalogSatisfiesPin(t *testing.T) {
	entry, err := Published().Lookup(plugin.PublishedName, plugin.PublishedPin)
	require.NoError(t, err)
	assert.Equal(t, Version, entry.Version)
	assert.IsType(t, &Generator{}, entry.New())
}

func TestGenerateFileSets(t *testing.T) {
	spec := loadPetstore(t)

	tests := []struct {
		projectType params.ProjectType
		want        []string
	}{
		{
			projectType: params.TypeJavaScript,
			want: []string{
				"README.md", "index.js", "openApi.json", "package.json",
				"security.js", "service.js", "test/test-plugin.js",
			},
		},
		{
			projectType: params.TypeStandaloneJS,
			want: []string{
				"README.md", "index.js", "openApi.json", "package.json",
				"security.js", "server.js", "service.js", "test/test-plugin.js",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.projectType), func(t *testing.T) {
			resp, err := New().Generate(context.Background(), &plugin.GenerateRequest{
				ProjectType:   string(tt.projectType),
				ProjectName:   "petstore",
				Specification: spec,
			})
			require.NoError(t, err)

			var paths []string
			for _, f := range resp.Files {
				paths = append(paths, f.Path)
				assert.NotEmpty(t, f.Content, f.Path)
			}
			assert.Equal(t, tt.want, paths, "files are returned sorted by path")
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	spec := loadPetstore(t)
	first := generate(t, New(), "javascript", spec)
	for range 3 {
		assert.Equal(t, first, generate(t, New(), "javascript", spec))
	}
}

func TestGenerateService(t *testing.T) {
	files := generate(t, New(), "javascript", loadPetstore(t))
	service := files["service.js"]

	assert.True(t, strings.HasPrefix(service, DefaultHeader+"\n"))
	assert.Contains(t, service, "async listPets(req, reply) {")
	assert.Contains(t, service, "// req.query: limit")
	assert.Contains(t, service, "async getPetsByPetId(req, reply) {")
	assert.Contains(t, service, "// Operation: getPetsByPetId (derived from GET /pets/{petId})")
	assert.Contains(t, service, "// req.params: petId")
	assert.Contains(t, service, "// Security: api_key")
	assert.Contains(t, service, "//   default: unexpected error")
	assert.Less(t, strings.Index(service, "listPets"), strings.Index(service, "getPetsByPetId"),
		"/pets sorts before /pets/{petId}")
}

func TestGenerateWritesDerivedOperationIDs(t *testing.T) {
	files := generate(t, New(), "javascript", loadPetstore(t))

	var doc struct {
		Paths map[string]map[string]struct {
			OperationID string `json:"operationId"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(files["openApi.json"]), &doc))
	assert.Equal(t, "listPets", doc.Paths["/pets"]["get"].OperationID)
	assert.Equal(t, "getPetsByPetId", doc.Paths["/pets/{petId}"]["get"].OperationID)
}

func TestGenerateSecurity(t *testing.T) {
	files := generate(t, New(), "javascript", loadPetstore(t))
	security := files["security.js"]

	assert.Contains(t, security, "// Scheme: api_key")
	assert.Contains(t, security, "// Type: apiKey (api_key in header)")
	assert.Contains(t, security, "async api_key(req, reply, params) {")
}

func TestGeneratePackageJSON(t *testing.T) {
	spec := loadPetstore(t)

	t.Run("javascript", func(t *testing.T) {
		var pkg packageManifest
		require.NoError(t, json.Unmarshal([]byte(generate(t, New(), "javascript", spec)["package.json"]), &pkg))
		assert.Equal(t, "petstore", pkg.Name)
		assert.Equal(t, "module", pkg.Type)
		assert.Equal(t, "index.js", pkg.Main)
		assert.Contains(t, pkg.Scripts["start"], "fastify start")
		assert.Contains(t, pkg.Dependencies, "fastify-cli")
		assert.Contains(t, pkg.Dependencies, "fastify-openapi-glue")
		assert.Equal(t, "A minimal petstore used in tests", pkg.Description)
	})

	t.Run("standaloneJS", func(t *testing.T) {
		var pkg packageManifest
		require.NoError(t, json.Unmarshal([]byte(generate(t, New(), "standaloneJS", spec)["package.json"]), &pkg))
		assert.Equal(t, "server.js", pkg.Main)
		assert.Equal(t, "node server.js", pkg.Scripts["start"])
		assert.Contains(t, pkg.Dependencies, "fastify")
		assert.NotContains(t, pkg.Dependencies, "fastify-cli")
	})
}

func TestGenerateTestPlugin(t *testing.T) {
	files := generate(t, New(), "javascript", loadPetstore(t))
	test := files["test/test-plugin.js"]

	assert.Contains(t, test, `fastify.hasRoute({ method: "GET", url: "/pets" }), "listPets")`)
	assert.Contains(t, test, `fastify.hasRoute({ method: "GET", url: "/pets/:petId" }), "getPetsByPetId")`)
}

func TestGenerateWithHeader(t *testing.T) {
	spec := loadPetstore(t)
	base := generate(t, New(), "javascript", spec)
	custom := generate(t, New(WithHeader("// custom build")), "javascript", spec)

	assert.Equal(t, base["openApi.json"], custom["openApi.json"])
	assert.Equal(t, base["package.json"], custom["package.json"])
	assert.NotEqual(t, base["service.js"], custom["service.js"])
	assert.True(t, strings.HasPrefix(custom["index.js"], "// custom build\n"))
}

func TestGenerateErrors(t *testing.T) {
	spec := loadPetstore(t)
	tests := []struct {
		name    string
		req     *plugin.GenerateRequest
		wantErr string
	}{
		{
			name:    "unsupported type",
			req:     &plugin.GenerateRequest{ProjectType: "cobol", ProjectName: "p", Specification: spec},
			wantErr: `unsupported project type "cobol"`,
		},
		{
			name:    "missing name",
			req:     &plugin.GenerateRequest{ProjectType: "javascript", Specification: spec},
			wantErr: "project name is required",
		},
		{
			name:    "garbage specification",
			req:     &plugin.GenerateRequest{ProjectType: "javascript", ProjectName: "p", Specification: []byte("{")},
			wantErr: "decoding document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
