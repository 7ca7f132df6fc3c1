package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowforge/pkg/errors"
)

// Format identifies a graph document encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the encoding from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported graph document extension %q", filepath.Ext(path))
	}
}

// Parse decodes a graph document from raw bytes.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode graph document")
	}
	return &doc, nil
}

// Load reads and decodes a graph document file.
func Load(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return Parse(data, format)
}

// Marshal encodes a document. JSON output is indented for diff-friendly
// files.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// Save encodes and writes a document, inferring the encoding from the file
// extension.
func Save(doc *Document, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph document")
	}
	if format == FormatJSON {
		data = append(data, '\n')
	}
	return os.WriteFile(path, data, 0644)
}
