package interp

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"
)

// Format identifies a dictionary encoding.
type Format string

// Supported dictionary encodings.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates a dictionary file with an unrecognised extension.
var ErrUnknownFormat = errors.New("unknown dictionary format")

//go:embed default.toml
var defaultTOML []byte

// Default returns the built-in dictionary.
func Default() *Dictionary {
	d, err := Decode(bytes.NewReader(defaultTOML), FormatTOML)
	if err != nil {
		// The embedded file is covered by tests; an error here is a build defect.
		panic(fmt.Sprintf("interp: embedded dictionary: %v", err))
	}
	return d
}

// FormatFor infers the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads a dictionary file, choosing the decoder by extension.
func Load(path string) (*Dictionary, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	d, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// LoadOrDefault returns the built-in dictionary when path is empty, and
// otherwise the file at path layered over the built-in dictionary.
func LoadOrDefault(path string) (*Dictionary, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return base.Merge(d), nil
}

// Decode reads a dictionary in the given encoding.
func Decode(r io.Reader, format Format) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	var d Dictionary
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s dictionary: %w", format, err)
	}
	return &d, nil
}
