// Package output renders generation results for the terminal.
//
// Materialize runs produce a one-line success message. Checksum-only runs
// serialize the manifest as tab-indented JSON, YAML, or a txtar archive,
// always with paths in sorted order so results diff cleanly.
package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/openapi-glue/orchestrator"
	"github.com/erraggy/openapi-glue/params"
)

// Format renders result. format is only consulted for checksum-only results.
// The returned string has no trailing newline. A txtar rendering of a
// content manifest is exact except for the files its comment lists, which
// carry digests; see Archive.
func Format(result *orchestrator.Result, format string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("output: nil result")
	}
	if !result.ChecksumOnly {
		return Success(result), nil
	}

	var (
		out []byte
		err error
	)
	switch format {
	case params.FormatJSON, "":
		out, err = manifestJSON(result.Manifest)
	case params.FormatYAML:
		out, err = yaml.Marshal(map[string]string(result.Manifest))
	case params.FormatTxtar:
		out = txtar.Format(Archive(result))
	default:
		return "", fmt.Errorf("output: invalid format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("output: marshaling to %s: %w", format, err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Success returns the message for a materialized project.
func Success(result *orchestrator.Result) string {
	return fmt.Sprintf("Project generated in %s (%d files)", result.Directory, len(result.Files))
}

// Archive returns the manifest as a txtar archive with one file per
// generated path.
//
// In content mode a file whose content txtar cannot hold exactly (no
// trailing newline, or a line that looks like a file marker) is recorded
// as its sha256 digest instead, and the comment lists those paths.
func Archive(result *orchestrator.Result) *txtar.Archive {
	kind := "sha256 checksums"
	if result.ContentManifest {
		kind = "contents"
	}
	comment := fmt.Sprintf("%s of %s", kind, result.Directory)
	if result.Plugin != "" {
		comment += " generated by " + result.Plugin
	}

	ar := &txtar.Archive{}
	var digested []string
	for _, path := range result.Manifest.Paths() {
		data := []byte(result.Manifest[path])
		if result.ContentManifest && !fitsTxtar(data) {
			sum := sha256.Sum256(data)
			data = []byte(hex.EncodeToString(sum[:]) + "\n")
			digested = append(digested, path)
		}
		ar.Files = append(ar.Files, txtar.File{Name: path, Data: data})
	}

	comment += "\n"
	if len(digested) > 0 {
		comment += "sha256 checksums instead of contents: " + strings.Join(digested, ", ") + "\n"
	}
	ar.Comment = []byte(comment)
	return ar
}

// fitsTxtar reports whether data survives a txtar round trip unchanged.
func fitsTxtar(data []byte) bool {
	ar := txtar.Parse(txtar.Format(&txtar.Archive{Files: []txtar.File{{Name: "f", Data: data}}}))
	return len(ar.Files) == 1 && bytes.Equal(ar.Files[0].Data, data)
}

// manifestJSON encodes m with tab indentation, sorted keys, and no HTML
// escaping, so contents stay readable.
func manifestJSON(m orchestrator.Manifest) ([]byte, error) {
	if m == nil {
		m = orchestrator.Manifest{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(map[string]string(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
