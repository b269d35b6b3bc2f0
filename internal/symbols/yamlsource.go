package symbols

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/june-6th/docexpand/internal/errs"
)

// yamlDatabase mirrors the on-disk YAML symbol database layout.
type yamlDatabase struct {
	Modules []yamlModule `yaml:"modules"`
}

type yamlModule struct {
	Name     string        `yaml:"name"`
	Bindings []yamlBinding `yaml:"bindings"`
}

type yamlBinding struct {
	Name     string    `yaml:"name"`
	Category string    `yaml:"category"`
	Exported bool      `yaml:"exported"`
	Docs     []yamlDoc `yaml:"docs"`
}

type yamlDoc struct {
	Signature string `yaml:"signature,omitempty"`
	Path      string `yaml:"path"`
	Text      string `yaml:"text"`
}

// LoadYAML reads a symbol database from a YAML file into a Store.
func LoadYAML(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryFileSystem, errs.SeverityFatal, "read symbol database")
	}

	var db yamlDatabase
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, errs.Wrap(err, errs.CategoryConfig, errs.SeverityFatal, "parse symbol database")
	}

	store := NewStore()
	for _, mod := range db.Modules {
		if mod.Name == "" {
			return nil, errs.Fatal(errs.CategoryConfig, "symbol database module with empty name")
		}
		store.AddModule(mod.Name)
		for _, b := range mod.Bindings {
			cat, ok := ParseCategory(b.Category)
			if !ok {
				return nil, errs.Fatal(errs.CategoryConfig,
					fmt.Sprintf("binding %s.%s: unknown category %q", mod.Name, b.Name, b.Category))
			}
			store.AddBinding(mod.Name, b.Name, cat, b.Exported)
			for _, d := range b.Docs {
				if err := store.AddDoc(mod.Name, b.Name, d.Signature, d.Path, d.Text); err != nil {
					return nil, errs.Wrap(err, errs.CategoryConfig, errs.SeverityFatal, "symbol database")
				}
			}
		}
	}
	return store, nil
}
