package specloader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/openapi-glue/internal/testutil"
	"github.com/erraggy/openapi-glue/oaserrors"
)

func TestLoad_Petstore(t *testing.T) {
	path := testutil.WritePetstore(t)

	spec, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, spec.Path)
	assert.Equal(t, "3.0.3", spec.SourceVersion)
	assert.False(t, spec.Converted)
	assert.Equal(t, "Swagger Petstore", spec.Document.Info.Title)
	assert.Equal(t, Stats{Paths: 2, Operations: 2, SecuritySchemes: 1}, spec.Stats())
}

func TestLoad_RelativePathResolvedAgainstWorkDir(t *testing.T) {
	path := testutil.WritePetstore(t)
	dir, name := filepath.Split(path)

	spec, err := Load(context.Background(), name, WithWorkDir(dir))
	require.NoError(t, err)
	assert.Equal(t, path, spec.Path)
}

func TestLoad_CanonicalJSONIsStable(t *testing.T) {
	path := testutil.WritePetstore(t)

	first, err := Load(context.Background(), path)
	require.NoError(t, err)
	second, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.JSON(), second.JSON())
	assert.Contains(t, string(first.JSON()), `"openapi": "3.0.3"`)

	// JSON returns a copy.
	data := first.JSON()
	data[0] = 'X'
	assert.NotEqual(t, data, first.JSON())
}

func TestLoad_SwaggerIsConverted(t *testing.T) {
	path := testutil.WriteFile(t, "swagger.yaml", testutil.PetstoreSwaggerYAML)

	spec, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, spec.Converted)
	assert.Equal(t, "2.0", spec.SourceVersion)
	require.NotNil(t, spec.Document.Paths.Value("/pets"))
	assert.Equal(t, "listPets", spec.Document.Paths.Value("/pets").Get.OperationID)
}

func TestLoad_Overlay(t *testing.T) {
	path := testutil.WritePetstore(t)
	overlayPath := testutil.WriteFile(t, "overlay.yaml", testutil.RenameOverlayYAML)

	spec, err := Load(context.Background(), path, WithOverlay(overlayPath))
	require.NoError(t, err)
	assert.Equal(t, "Overlaid Petstore", spec.Document.Info.Title)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	notMapping := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(notMapping, []byte("- a\n- b\n"), 0o600))
	noVersion := filepath.Join(dir, "noversion.yaml")
	require.NoError(t, os.WriteFile(noVersion, []byte("info:\n  title: x\n"), 0o600))
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("openapi: [unclosed\n"), 0o600))
	invalid := testutil.WriteFile(t, "invalid.yaml", testutil.InvalidYAML)

	tests := []struct {
		name    string
		path    string
		opts    []Option
		message string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml"), nil, "reading document"},
		{"malformed yaml", broken, nil, "decoding document"},
		{"not a mapping", notMapping, nil, "document is not a mapping"},
		{"no version", noVersion, nil, "missing 'openapi' or 'swagger' version field"},
		{"fails validation", invalid, nil, "validating document"},
		{"missing overlay", testutil.WritePetstore(t), []Option{WithOverlay(filepath.Join(dir, "nope.yaml"))}, "applying overlay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Load(context.Background(), tt.path, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, spec)
			assert.True(t, errors.Is(err, oaserrors.ErrSpecification))

			var specErr *oaserrors.SpecificationError
			require.ErrorAs(t, err, &specErr)
			assert.Contains(t, specErr.Message, tt.message)
			assert.True(t, filepath.IsAbs(specErr.Path))
		})
	}
}

func TestLoad_MissingFileWrapsNotExist(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_ExternalRefsAreInternalized(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		converted bool
	}{
		{name: "openapi 3", doc: testutil.SplitPetstoreYAML},
		{name: "swagger 2.0", doc: testutil.SplitSwaggerYAML, converted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Load(context.Background(), testutil.WriteSplitSpec(t, tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.converted, spec.Converted)
			assert.NotContains(t, string(spec.JSON()), "schemas.yaml")

			doc, err := FromJSON(context.Background(), spec.JSON())
			require.NoError(t, err, "the wire document must load without its directory")
			require.NotNil(t, doc.Components)
			assert.NotEmpty(t, doc.Components.Schemas)

			schema := doc.Paths.Find("/pets/{petId}").Get.Responses.Status(200).Value.
				Content.Get("application/json").Schema
			require.NotNil(t, schema.Value)
			assert.Contains(t, schema.Value.Properties, "name")
		})
	}

	t.Run("rejected when external refs are disabled", func(t *testing.T) {
		_, err := Load(context.Background(), testutil.WriteSplitSpec(t, testutil.SplitPetstoreYAML), WithExternalRefs(false))
		assert.ErrorIs(t, err, oaserrors.ErrSpecification)
	})
}

func TestFromJSON_RoundTrip(t *testing.T) {
	spec, err := Load(context.Background(), testutil.WritePetstore(t))
	require.NoError(t, err)

	doc, err := FromJSON(context.Background(), spec.JSON())
	require.NoError(t, err)
	assert.Equal(t, spec.Document.Info.Title, doc.Info.Title)
	assert.Equal(t, spec.Document.Paths.Len(), doc.Paths.Len())

	_, err = FromJSON(context.Background(), []byte("{not json"))
	assert.Error(t, err)
}
