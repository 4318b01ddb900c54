// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PetstoreYAML is a minimal OAS 3.0 document with two operations, one
// without an operationId, and one security scheme.
const PetstoreYAML = `openapi: "3.0.3"
info:
  title: Swagger Petstore
  description: A minimal petstore used in tests
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      parameters:
        - name: limit
          in: query
          required: false
          schema:
            type: integer
            format: int32
      responses:
        "200":
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
  /pets/{petId}:
    get:
      summary: Info for a specific pet
      security:
        - api_key: []
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: Expected response to a valid request
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
        default:
          description: unexpected error
components:
  securitySchemes:
    api_key:
      type: apiKey
      name: api_key
      in: header
  schemas:
    Pet:
      type: object
      required:
        - id
        - name
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
`

// PetstoreSwaggerYAML is the Swagger 2.0 rendition of a one-operation petstore.
const PetstoreSwaggerYAML = `swagger: "2.0"
info:
  title: Swagger Petstore
  version: "1.0.0"
basePath: /v1
paths:
  /pets:
    get:
      operationId: listPets
      produces:
        - application/json
      responses:
        200:
          description: A list of pets
`

// InvalidYAML declares a version but is missing the required info object.
const InvalidYAML = `openapi: "3.0.3"
paths: {}
`

// RenameOverlayYAML is an OpenAPI Overlay that changes the document title.
const RenameOverlayYAML = `overlay: 1.0.0
info:
  title: Rename title
  version: 1.0.0
actions:
  - target: $.info
    update:
      title: Overlaid Petstore
`

// WriteFile writes content to name inside a fresh temporary directory and
// returns the absolute file path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file %s: %v", name, err)
	}
	return path
}

// WritePetstore writes PetstoreYAML to a temporary file and returns its path.
func WritePetstore(t *testing.T) string {
	t.Helper()
	return WriteFile(t, "petstore.yaml", PetstoreYAML)
}

// SplitPetstoreYAML references its Pet schema from SchemasYAML in the same
// directory.
const SplitPetstoreYAML = `openapi: "3.0.3"
info:
  title: Split Petstore
  version: "1.0.0"
paths:
  /pets/{petId}:
    get:
      operationId: showPetById
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: a pet
          content:
            application/json:
              schema:
                $ref: "./schemas.yaml#/Pet"
`

// SplitSwaggerYAML is the Swagger 2.0 rendition of SplitPetstoreYAML.
const SplitSwaggerYAML = `swagger: "2.0"
info:
  title: Split Petstore
  version: "1.0.0"
produces:
  - application/json
paths:
  /pets/{petId}:
    get:
      operationId: showPetById
      parameters:
        - name: petId
          in: path
          required: true
          type: string
      responses:
        "200":
          description: a pet
          schema:
            $ref: "./schemas.yaml#/Pet"
`

// SchemasYAML holds the schemas referenced by the split fixtures.
const SchemasYAML = `Pet:
  type: object
  required: [id, name]
  properties:
    id:
      type: integer
      format: int64
    name:
      type: string
`

// WriteSplitSpec writes main as api.yaml next to SchemasYAML and returns the
// path of api.yaml.
func WriteSplitSpec(t *testing.T, main string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{"api.yaml": main, "schemas.yaml": SchemasYAML} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write temporary file %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "api.yaml")
}
