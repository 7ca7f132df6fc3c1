package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowforge/pkg/errors"
)

// Format identifies a registry document encoding.
type Format string

// Supported registry document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to a registry document format.
// Returns an INVALID_FORMAT error for unrecognized extensions.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unrecognized catalog extension: %s", filepath.Ext(path))
}

// Parse decodes a registry document from raw bytes.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown catalog format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode %s catalog", format)
	}
	return &doc, nil
}

// LoadFile reads one registry file and merges it into the catalog.
// The format is chosen by extension (.json, .toml, .yaml/.yml).
func (c *Catalog) LoadFile(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read catalog file %s", path)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "catalog file %s", path)
	}
	return c.Merge(doc)
}

// Load builds a catalog by merging registry files in argument order.
// Later files add categories or overwrite node-type entries; they never
// remove earlier ones.
func Load(paths ...string) (*Catalog, error) {
	c := New()
	for _, p := range paths {
		if err := c.LoadFile(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
