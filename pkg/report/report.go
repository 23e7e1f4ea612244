package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/go-logr/logr"
	"sigs.k8s.io/yaml"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Name returns the path of the comparison report
// for the two branches inside dir.
func Name(dir, branch1, branch2, format string) string {
	ext := ".json"
	if format == FormatYAML {
		ext = ".yaml"
	}
	return filepath.Join(dir, "comparison_"+branch1+"_"+branch2+ext)
}

// Marshal encodes the result in the given format. JSON
// output is indented with 4 spaces.
func Marshal(result v1.Result, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "    ")
		if err := enc.Encode(result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(result)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Write saves the result to path.
func Write(ctx context.Context, path string, result v1.Result, format string) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path, "format", format)

	data, err := Marshal(result, format)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0644); err != nil {
		log.Error(err, "failed to write report")
		return fmt.Errorf("writing report: %w", err)
	}
	log.V(1).Info("wrote report", "bytes", len(data))
	return nil
}

// Read loads a report previously written by Write. It is the
// inverse of Write and is used to check that reports round-trip.
func Read(path string) (v1.Result, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var result v1.Result
	// yaml.Unmarshal accepts both formats since JSON is valid YAML
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return result, nil
}
