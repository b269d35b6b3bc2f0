// Package symbols defines the symbol-documentation backend consumed by the
// expansion pipeline: resolving symbol references to bindings, classifying
// bindings, and fetching their documentation entries. A concrete in-memory
// Store implements the interface and can be populated programmatically or
// loaded from YAML and SQLite sources.
package symbols

import "strings"

// Category classifies a documented binding for autodiscovery filtering.
type Category string

const (
	CategoryModule   Category = "module"
	CategoryConstant Category = "constant"
	CategoryType     Category = "type"
	CategoryFunction Category = "function"
	CategoryMacro    Category = "macro"
)

// DefaultOrder is the autodiscovery category order used when a directive
// does not configure one.
var DefaultOrder = []Category{
	CategoryModule,
	CategoryConstant,
	CategoryType,
	CategoryFunction,
	CategoryMacro,
}

// ParseCategory converts a category name as written in directive bodies.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(s)) {
	case CategoryModule, CategoryConstant, CategoryType, CategoryFunction, CategoryMacro:
		return Category(strings.ToLower(s)), true
	}
	return "", false
}

// Binding is a symbol name resolved against a module.
type Binding struct {
	Module string
	Name   string
}

// FullName returns the fully-qualified symbol name.
func (b Binding) FullName() string {
	if b.Module == "" {
		return b.Name
	}
	return b.Module + "." + b.Name
}

// Identity is the uniqueness key for documented entries: a binding plus an
// optional signature discriminator. At most one documentation node may be
// registered per Identity for a whole build.
type Identity struct {
	Binding   Binding
	Signature string
}

// DocEntry is one resolved documentation entry.
type DocEntry struct {
	Module string // owning module
	Path   string // source file path the entry was extracted from
	Text   string // documentation body (markdown)
}

// SignatureDocs pairs a signature with its documentation entry.
type SignatureDocs struct {
	Signature string
	Entry     DocEntry
}

// BindingDocs groups every documented signature under one binding.
type BindingDocs struct {
	Binding Binding
	Docs    []SignatureDocs
}

// Backend is the symbol-documentation collaborator the expansion pipeline
// consumes. Implementations must be deterministic: repeated calls with the
// same arguments return results in the same order.
type Backend interface {
	// ResolveBinding resolves a reference expression against the active
	// module. Qualified references ("mod.name") override the module.
	ResolveBinding(module, ref string) (Binding, error)

	// BindingDefined reports whether the binding names a known symbol.
	BindingDefined(b Binding) bool

	// IsKeyword reports whether name denotes a language keyword, which may
	// carry documentation without being a defined binding.
	IsKeyword(name string) bool

	// BindingCategory returns the classification tag for a binding.
	BindingCategory(b Binding) Category

	// BindingIsExported reports the binding's export visibility from module.
	BindingIsExported(module string, b Binding) bool

	// FetchDocs returns documentation entries for a binding, narrowed to one
	// signature when signature is non-empty, and restricted to entries whose
	// owning module is in moduleFilter when it is non-empty.
	FetchDocs(b Binding, signature string, moduleFilter []string) []DocEntry

	// EnumerateModuleDocs lists every documented binding in module with all
	// of its signature/entry pairs.
	EnumerateModuleDocs(module string) ([]BindingDocs, error)
}

// SplitSignature splits a reference expression into its name part and an
// optional signature discriminator ("name::signature").
func SplitSignature(ref string) (name, signature string) {
	if i := strings.Index(ref, "::"); i >= 0 {
		return strings.TrimSpace(ref[:i]), strings.TrimSpace(ref[i+2:])
	}
	return strings.TrimSpace(ref), ""
}
