package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/openapi-glue/orchestrator"
)

func checksumResult() *orchestrator.Result {
	return &orchestrator.Result{
		ChecksumOnly: true,
		Directory:    "/work/petstore",
		Files:        []string{"index.js", "package.json"},
		Manifest: orchestrator.Manifest{
			"package.json": "bbb",
			"index.js":     "aaa",
		},
		Plugin: "openapi-glue@v1.2.0",
	}
}

func TestFormatMaterialize(t *testing.T) {
	result := &orchestrator.Result{Directory: "/work/petstore", Files: []string{"a", "b", "c"}}
	for _, format := range []string{"json", "yaml", "txtar", ""} {
		out, err := Format(result, format)
		require.NoError(t, err)
		assert.Equal(t, "Project generated in /work/petstore (3 files)", out)
	}
}

func TestFormatJSON(t *testing.T) {
	out, err := Format(checksumResult(), "json")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"index.js\": \"aaa\",\n\t\"package.json\": \"bbb\"\n}", out)
}

func TestFormatJSONKeepsContentReadable(t *testing.T) {
	result := checksumResult()
	result.Manifest = orchestrator.Manifest{"index.js": "a <b> & c"}
	out, err := Format(result, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"a <b> & c"`)
}

func TestFormatYAML(t *testing.T) {
	out, err := Format(checksumResult(), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "index.js: aaa\npackage.json: bbb", out)

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string]string(checksumResult().Manifest), decoded)
}

func TestFormatTxtar(t *testing.T) {
	result := checksumResult()
	result.ContentManifest = true
	result.Manifest = orchestrator.Manifest{
		"test/a.js":    "console.log(1);\n",
		"package.json": "{}",
	}

	out, err := Format(result, "txtar")
	require.NoError(t, err)

	ar := txtar.Parse([]byte(out))
	assert.Equal(t, "contents of /work/petstore generated by openapi-glue@v1.2.0\n"+
		"sha256 checksums instead of contents: package.json\n", string(ar.Comment))
	require.Len(t, ar.Files, 2)
	assert.Equal(t, "package.json", ar.Files[0].Name)
	assert.Equal(t, "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a\n", string(ar.Files[0].Data))
	assert.Equal(t, "test/a.js", ar.Files[1].Name)
	assert.Equal(t, "console.log(1);\n", string(ar.Files[1].Data))
}

func TestArchiveKeepsContentExact(t *testing.T) {
	result := checksumResult()
	result.ContentManifest = true
	result.Manifest = orchestrator.Manifest{
		"README.md":   "# pets\n\n-- not a file --\n",
		"empty.txt":   "",
		"index.js":    "module.exports = {}\n",
		"no-newline":  "last line",
		"service.js":  "// ok\n-- notes.txt --\n",
		"trailing.md": "text\n\n",
	}

	ar := Archive(result)
	assert.Contains(t, string(ar.Comment), "sha256 checksums instead of contents: README.md, no-newline, service.js\n")

	got := map[string]string{}
	for _, f := range txtar.Parse(txtar.Format(ar)).Files {
		got[f.Name] = string(f.Data)
	}
	assert.Equal(t, "", got["empty.txt"])
	assert.Equal(t, "module.exports = {}\n", got["index.js"])
	assert.Equal(t, "text\n\n", got["trailing.md"])
	// 64 hex digits and a newline
	assert.Len(t, got["no-newline"], 65)
	assert.Len(t, got["README.md"], 65)
	assert.Len(t, got["service.js"], 65)
}

func TestArchiveChecksums(t *testing.T) {
	ar := Archive(checksumResult())
	assert.Equal(t, "sha256 checksums of /work/petstore generated by openapi-glue@v1.2.0\n", string(ar.Comment))
	assert.Equal(t, "index.js", ar.Files[0].Name)
}

func TestFormatErrors(t *testing.T) {
	_, err := Format(nil, "json")
	assert.Error(t, err)

	_, err = Format(checksumResult(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestFormatEmptyManifest(t *testing.T) {
	out, err := Format(&orchestrator.Result{ChecksumOnly: true}, "json")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}
