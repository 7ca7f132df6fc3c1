package catalog

import (
	"github.com/matzehuels/flowforge/pkg/errors"
)

// Catalog is the merged lookup table of node type definitions and the type
// registry the connection rules draw their vocabulary from.
//
// A Catalog is populated at load time by merging registry documents and is
// treated as immutable afterwards. It is safe for concurrent reads; Merge
// must not race with readers.
type Catalog struct {
	CodeGen    CodeGenOptions
	DataTypes  map[string]DataType
	Categories map[string]*Category
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		DataTypes:  make(map[string]DataType),
		Categories: make(map[string]*Category),
	}
}

// Lookup returns the node type definition for (category, typ).
// Returns a DEFINITION_NOT_FOUND error if no entry matches; node
// construction must abort on that error rather than produce a partially
// initialized node.
func (c *Catalog) Lookup(category, typ string) (*NodeType, error) {
	if cat, ok := c.Categories[category]; ok {
		if def, ok := cat.Nodes[typ]; ok {
			return def, nil
		}
	}
	return nil, errors.New(errors.ErrCodeDefinitionNotFound, "no node type %s/%s in catalog", category, typ)
}

// TypeInfo returns the display metadata registered for a type name.
// Unknown names are not an error: compatibility depends only on string
// equality and the two reserved names, so ok=false simply means no metadata.
func (c *Catalog) TypeInfo(name string) (DataType, bool) {
	dt, ok := c.DataTypes[name]
	return dt, ok
}

// CategoryColor returns the display color of a category, or "" if the
// category is unknown or has no color.
func (c *Catalog) CategoryColor(name string) string {
	if cat, ok := c.Categories[name]; ok {
		return cat.Color
	}
	return ""
}

// Merge folds a registry document into the catalog. Later documents add new
// categories wholesale, or add/overwrite node-type entries within an existing
// category; nothing is ever deleted. Data types add or overwrite by name,
// and non-empty code generation fields overwrite prior ones.
//
// Merge validates names before touching the catalog and returns an
// INVALID_CATALOG error on the first violation, leaving the catalog
// unchanged.
func (c *Catalog) Merge(doc *Document) error {
	if err := doc.validate(); err != nil {
		return err
	}

	mergeCodeGen(&c.CodeGen, doc.CodeGen)

	for name, dt := range doc.DataTypes {
		c.DataTypes[name] = dt
	}

	for name, cat := range doc.Categories {
		existing, ok := c.Categories[name]
		if !ok {
			c.Categories[name] = copyCategory(name, cat)
			continue
		}
		if cat.Color != "" {
			existing.Color = cat.Color
		}
		for typ, def := range cat.Nodes {
			existing.Nodes[typ] = copyNodeType(name, def)
		}
	}

	return nil
}

// Document is the serialized form of one registry file. Multiple documents
// merge additively into a single Catalog.
type Document struct {
	CodeGen    CodeGenOptions       `json:"codeGeneration,omitempty" toml:"codeGeneration,omitempty" yaml:"codeGeneration,omitempty"`
	DataTypes  map[string]DataType  `json:"dataTypes,omitempty" toml:"dataTypes,omitempty" yaml:"dataTypes,omitempty"`
	Categories map[string]*Category `json:"nodeCategories,omitempty" toml:"nodeCategories,omitempty" yaml:"nodeCategories,omitempty"`
}

func (d *Document) validate() error {
	for name := range d.DataTypes {
		if err := errors.ValidateTypeName(name); err != nil {
			return err
		}
	}
	for name, cat := range d.Categories {
		if err := errors.ValidateCategoryName(name); err != nil {
			return err
		}
		if cat == nil {
			continue
		}
		for typ, def := range cat.Nodes {
			if err := errors.ValidateTypeName(typ); err != nil {
				return err
			}
			if def == nil {
				return errors.New(errors.ErrCodeInvalidCatalog, "node type %s/%s has no definition", name, typ)
			}
			for _, p := range def.Inputs {
				if err := validatePortDef(name, typ, p); err != nil {
					return err
				}
			}
			for _, p := range def.Outputs {
				if err := validatePortDef(name, typ, p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validatePortDef(category, typ string, p PortDef) error {
	if p.Type == "" {
		return errors.New(errors.ErrCodeInvalidCatalog, "node type %s/%s has a port without a type", category, typ)
	}
	if err := errors.ValidateTypeName(p.Type); err != nil {
		return err
	}
	return errors.ValidatePortName(p.Name)
}

func mergeCodeGen(dst *CodeGenOptions, src CodeGenOptions) {
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.Indentation != "" {
		dst.Indentation = src.Indentation
	}
	if src.VariablePrefix != "" {
		dst.VariablePrefix = src.VariablePrefix
	}
	if src.ResultPrefix != "" {
		dst.ResultPrefix = src.ResultPrefix
	}
	if src.CommentStyle != "" {
		dst.CommentStyle = src.CommentStyle
	}
}

// copyCategory deep-copies a category so later mutation of the source
// document cannot alias into the catalog.
func copyCategory(name string, src *Category) *Category {
	dst := &Category{Nodes: make(map[string]*NodeType)}
	if src == nil {
		return dst
	}
	dst.Color = src.Color
	for typ, def := range src.Nodes {
		dst.Nodes[typ] = copyNodeType(name, def)
	}
	return dst
}

func copyNodeType(category string, src *NodeType) *NodeType {
	dst := *src
	if dst.Category == "" {
		dst.Category = category
	}
	dst.Inputs = append([]PortDef(nil), src.Inputs...)
	dst.Outputs = append([]PortDef(nil), src.Outputs...)
	if src.Value != nil {
		v := *src.Value
		dst.Value = &v
	}
	return &dst
}
