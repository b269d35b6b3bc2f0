package symbols

import (
	"fmt"
	"strings"
)

// keywords documented without a corresponding defined binding.
var defaultKeywords = map[string]bool{
	"break": true, "case": true, "const": true, "continue": true,
	"else": true, "for": true, "func": true, "if": true, "import": true,
	"return": true, "switch": true, "type": true, "var": true,
}

type bindingInfo struct {
	binding  Binding
	category Category
	exported bool
	docs     []SignatureDocs
}

type moduleInfo struct {
	name     string
	bindings map[string]*bindingInfo
	order    []string // binding names in registration order
}

// Store is an in-memory Backend implementation. It is populated up front
// (programmatically or from a YAML/SQLite source) and read-only afterwards,
// so the single-threaded pipeline needs no locking.
type Store struct {
	modules  map[string]*moduleInfo
	order    []string // module names in registration order
	keywords map[string]bool
}

// NewStore creates an empty symbol store with the default keyword set.
func NewStore() *Store {
	kw := make(map[string]bool, len(defaultKeywords))
	for k := range defaultKeywords {
		kw[k] = true
	}
	return &Store{
		modules:  make(map[string]*moduleInfo),
		keywords: kw,
	}
}

// AddModule registers a module. Adding an existing module is a no-op.
func (s *Store) AddModule(name string) {
	if _, ok := s.modules[name]; ok {
		return
	}
	s.modules[name] = &moduleInfo{name: name, bindings: make(map[string]*bindingInfo)}
	s.order = append(s.order, name)
}

// AddBinding registers a binding in module, creating the module if needed.
func (s *Store) AddBinding(module, name string, category Category, exported bool) {
	s.AddModule(module)
	m := s.modules[module]
	if _, ok := m.bindings[name]; ok {
		return
	}
	m.bindings[name] = &bindingInfo{
		binding:  Binding{Module: module, Name: name},
		category: category,
		exported: exported,
	}
	m.order = append(m.order, name)
}

// AddDoc attaches a documentation entry to a binding's signature. The
// binding must have been registered first.
func (s *Store) AddDoc(module, binding, signature, path, text string) error {
	m := s.modules[module]
	if m == nil {
		return fmt.Errorf("unknown module %q", module)
	}
	bi := m.bindings[binding]
	if bi == nil {
		return fmt.Errorf("unknown binding %q in module %q", binding, module)
	}
	bi.docs = append(bi.docs, SignatureDocs{
		Signature: signature,
		Entry:     DocEntry{Module: module, Path: path, Text: text},
	})
	return nil
}

// Modules returns module names in registration order.
func (s *Store) Modules() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ResolveBinding implements Backend. Qualified references ("mod.name")
// override the active module; unqualified ones resolve in it.
func (s *Store) ResolveBinding(module, ref string) (Binding, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Binding{}, fmt.Errorf("empty symbol reference")
	}
	if i := strings.LastIndex(ref, "."); i >= 0 {
		module, ref = ref[:i], ref[i+1:]
	}
	if module == "" {
		return Binding{}, fmt.Errorf("no module context for %q", ref)
	}
	if s.keywords[ref] {
		return Binding{Module: module, Name: ref}, nil
	}
	if _, ok := s.modules[module]; !ok {
		return Binding{}, fmt.Errorf("unknown module %q", module)
	}
	return Binding{Module: module, Name: ref}, nil
}

// BindingDefined implements Backend.
func (s *Store) BindingDefined(b Binding) bool {
	m := s.modules[b.Module]
	if m == nil {
		return false
	}
	_, ok := m.bindings[b.Name]
	return ok
}

// IsKeyword implements Backend.
func (s *Store) IsKeyword(name string) bool {
	return s.keywords[name]
}

// BindingCategory implements Backend.
func (s *Store) BindingCategory(b Binding) Category {
	if m := s.modules[b.Module]; m != nil {
		if bi := m.bindings[b.Name]; bi != nil {
			return bi.category
		}
	}
	return CategoryFunction
}

// BindingIsExported implements Backend.
func (s *Store) BindingIsExported(module string, b Binding) bool {
	if m := s.modules[b.Module]; m != nil {
		if bi := m.bindings[b.Name]; bi != nil {
			return bi.exported
		}
	}
	return false
}

// FetchDocs implements Backend.
func (s *Store) FetchDocs(b Binding, signature string, moduleFilter []string) []DocEntry {
	m := s.modules[b.Module]
	if m == nil {
		return nil
	}
	bi := m.bindings[b.Name]
	if bi == nil {
		return nil
	}
	var out []DocEntry
	for _, sd := range bi.docs {
		if signature != "" && sd.Signature != signature {
			continue
		}
		if len(moduleFilter) > 0 && !contains(moduleFilter, sd.Entry.Module) {
			continue
		}
		out = append(out, sd.Entry)
	}
	return out
}

// EnumerateModuleDocs implements Backend. Bindings and their entries come
// back in registration order, which keeps autodiscovery deterministic.
func (s *Store) EnumerateModuleDocs(module string) ([]BindingDocs, error) {
	m := s.modules[module]
	if m == nil {
		return nil, fmt.Errorf("unknown module %q", module)
	}
	out := make([]BindingDocs, 0, len(m.order))
	for _, name := range m.order {
		bi := m.bindings[name]
		if len(bi.docs) == 0 {
			continue
		}
		docs := make([]SignatureDocs, len(bi.docs))
		copy(docs, bi.docs)
		out = append(out, BindingDocs{Binding: bi.binding, Docs: docs})
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
