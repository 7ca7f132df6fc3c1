package errors

import (
	"strings"
	"unicode"
)

// ValidateTypeName validates a port value-type name from a catalog.
// Type names are compared by string equality throughout the system, so the
// rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No placeholder metacharacters ($, {, })
//   - Maximum length of 64 characters
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCatalog, "type name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidCatalog, "type name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCatalog, "type name contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(name, "${}") {
		return New(ErrCodeInvalidCatalog, "type name contains placeholder metacharacters")
	}

	return nil
}

// ValidatePortName validates a port display name. Port names become ${name}
// placeholders inside code templates, so they must not contain characters
// that would break placeholder scanning.
//
// An empty name is allowed: unnamed ports are matched by kind instead.
func ValidatePortName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidCatalog, "port name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "port name contains control characters")
		}
	}

	if strings.ContainsAny(name, "${}") {
		return New(ErrCodeInvalidCatalog, "port name contains placeholder metacharacters: %q", name)
	}

	return nil
}

// ValidateCategoryName validates a node category name from a catalog.
// Category names key the catalog lookup table and appear in documents, so
// they follow the same rules as type names.
func ValidateCategoryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCatalog, "category name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidCatalog, "category name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "category name contains control characters")
		}
	}

	return nil
}
