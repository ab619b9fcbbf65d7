package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bakito/example-gen/internal/flags"
	"github.com/bakito/example-gen/internal/generate"
	"github.com/bakito/example-gen/internal/openapi"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const jsonMediaType = "application/json"

// Encode encodes v in the given format, terminated by a newline.
func Encode(v any, format flags.Format) ([]byte, error) {
	if format == flags.FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("error encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("error encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding json: %w", err)
	}
	return append(b, '\n'), nil
}

// WriteList writes all results as one list.
func WriteList(w io.Writer, results []generate.Result, format flags.Format) error {
	if results == nil {
		results = []generate.Result{}
	}
	b, err := Encode(results, format)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteExamples writes one file per result into targetDir.
func WriteExamples(fs afero.Fs, results []generate.Result, targetDir string, format flags.Format) error {
	var files []outFile
	used := make(map[string]bool)
	for _, r := range results {
		content, err := Encode(r.Example, format)
		if err != nil {
			return fmt.Errorf("error generating example of %s: %w", r.Operation, err)
		}

		outputFile := filepath.Join(targetDir, uniqueName(used, FileName(r), format.Ext()))
		files = append(files, outFile{
			name:       outputFile,
			content:    content,
			successMsg: "Successfully generated example",
			successArgs: []any{
				"operation", r.Operation,
				"target", r.Target,
				"status", r.Status,
				"mediaType", r.MediaType,
				"file", outputFile,
			},
		})
	}
	return writeFiles(fs, files)
}

func writeFiles(fs afero.Fs, files []outFile) error {
	for _, f := range files {
		dir := filepath.Dir(f.name)

		// Create the directory if it doesn't exist
		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}

		if err := afero.WriteFile(fs, f.name, f.content, 0o644); err != nil {
			return fmt.Errorf("error writing output file: %w", err)
		}

		slog.With(f.successArgs...).Info(f.successMsg)
	}
	return nil
}

type outFile struct {
	name        string
	content     []byte
	successMsg  string
	successArgs []any
}

// FileName returns the base name (without extension) of the example file of r:
// operation, target, status and, for other than JSON bodies, the media type.
func FileName(r generate.Result) string {
	parts := []string{slug(r.Operation), string(r.Target)}
	if r.Status != "" {
		parts = append(parts, slug(r.Status))
	}
	if r.MediaType != "" && r.MediaType != jsonMediaType {
		parts = append(parts, slug(r.MediaType))
	}
	return strings.Join(parts, "_")
}

func slug(s string) string {
	return strings.ToLower(openapi.ToCamelCase(s))
}

func uniqueName(used map[string]bool, name, ext string) string {
	candidate := name + ext
	for i := 2; used[candidate]; i++ {
		candidate = name + "_" + strconv.Itoa(i) + ext
	}
	used[candidate] = true
	return candidate
}
