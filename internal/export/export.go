// Package export serializes a chart snapshot for external renderers: every
// position with its visual degree and house, the twelve cusps, the aspects
// and the placed glyphs.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/notation"
)

// Format names a snapshot encoding.
type Format string

// Supported encodings.
const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
	// Chart writes the source records back out, one body per line, so the
	// output reparses to the same chart.
	Chart Format = "chart"
)

// ErrUnknownFormat indicates an unsupported encoding name.
var ErrUnknownFormat = errors.New("unknown export format")

// ErrNoSnapshot indicates Encode was called without a snapshot.
var ErrNoSnapshot = errors.New("no snapshot to export")

// ParseFormat maps a user-supplied name to a Format. "yml" is accepted as
// YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "chart":
		return Chart, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Marshal encodes snap in the given format.
func Marshal(snap *chart.Snapshot, format Format) ([]byte, error) {
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	var (
		data []byte
		err  error
	)
	switch format {
	case JSON:
		data, err = json.MarshalIndent(snap, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case TOML:
		data, err = toml.Marshal(snap)
	case YAML:
		data, err = yaml.Marshal(snap)
	case Chart:
		data = []byte(notation.FormatAll(snap.Positions) + "\n")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot as %s: %w", format, err)
	}
	return data, nil
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, snap *chart.Snapshot, format Format) error {
	data, err := Marshal(snap, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
