package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for wizard files that are neither JSON nor YAML
var ErrUnsupportedFormat = errors.New("unsupported wizard file format")

// DefaultMaxBytes caps how much of a wizard file is read
const DefaultMaxBytes int64 = 1 << 20

// Loader reads raw wizard submissions from disk or a reader
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader; maxBytes <= 0 uses DefaultMaxBytes
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{maxBytes: maxBytes}
}

// LoadResult contains the decoded wizard data and where it came from
type LoadResult struct {
	Raw    any
	Source string
	Format string // json or yaml
}

// LoadFile reads and decodes a wizard file. "-" reads JSON from stdin.
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	if path == "-" {
		return l.Load(os.Stdin, "stdin", "json")
	}

	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wizard file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(f, path, format)
}

// Load decodes wizard data from r in the given format
func (l *Loader) Load(r io.Reader, source, format string) (*LoadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("read %s: exceeds %d bytes", source, l.maxBytes)
	}

	var raw any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s as JSON: %w", source, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode %s as YAML: %w", source, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return &LoadResult{
		Raw:    raw,
		Source: source,
		Format: format,
	}, nil
}

func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
