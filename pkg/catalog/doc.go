// Package catalog defines the node type catalog and the port type registry.
//
// # Overview
//
// A catalog is the vocabulary a flow graph is built from: node type
// definitions (title, ports, value slot, code templates) keyed by category
// and type name, plus display metadata for port value types. Graphs
// instantiate nodes by (category, type) lookup; the code generator reads the
// templates back out of the catalog during compilation.
//
// # Registry documents
//
// Catalogs load from registry documents in JSON, TOML, or YAML:
//
//	{
//	  "codeGeneration": {"language": "lua", "commentStyle": "--"},
//	  "dataTypes": {"float": {"name": "Float", "color": "#6b9bd1"}},
//	  "nodeCategories": {
//	    "math": {
//	      "color": "#3a6ea5",
//	      "nodes": {
//	        "add": {
//	          "title": "Add",
//	          "inputs": [
//	            {"type": "float", "name": "A"},
//	            {"type": "float", "name": "B"}
//	          ],
//	          "outputs": [{"type": "float", "code": "${A} + ${B}"}]
//	        }
//	      }
//	    }
//	  }
//	}
//
// Multiple documents merge additively: later documents add new categories
// wholesale or add/overwrite node-type entries within an existing category.
// Nothing is ever deleted by a merge, so a reload can only grow the
// vocabulary.
//
// # Reserved type names
//
// Two port type names are reserved: "exec" marks control-flow ports and
// "data" is the one-directional wildcard (a data input accepts any producer,
// a data output only feeds data inputs). Every other name is an ordinary
// data type compared by string equality; names absent from dataTypes are
// legal and simply carry no display metadata.
package catalog
