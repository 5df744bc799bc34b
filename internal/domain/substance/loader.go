package substance

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/EatTrue/pkg/errors"
)

//go:embed data/substances.yaml
var builtinCatalog []byte

// catalogDocument is the on-disk layout shared by the YAML and JSON forms.
type catalogDocument struct {
	Substances   []Record      `yaml:"substances" json:"substances"`
	GenericTerms []GenericTerm `yaml:"generic_terms" json:"generic_terms"`
}

// Parse decodes a catalog document. JSON documents are accepted too, being a
// subset of YAML. Unknown fields are rejected so that typos in hand-edited
// catalogs surface at load time.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeCatalogLoadFailed, "failed to decode substance catalog")
	}
	if len(doc.Substances) == 0 {
		return nil, errors.New(errors.CodeCatalogLoadFailed, "substance catalog is empty")
	}

	c, err := NewCatalog(doc.Substances, doc.GenericTerms)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckFormat rejects catalog names without a .yaml, .yml or .json
// extension.
func CheckFormat(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return nil
	}
	return errors.Newf(errors.ErrCodeCatalogUnsupported, "unsupported catalog file extension %q", filepath.Ext(name))
}

// LoadFile reads a catalog from a .yaml, .yml or .json file.
func LoadFile(path string) (*Catalog, error) {
	if err := CheckFormat(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCatalogLoadFailed, "failed to read substance catalog").
			WithDetail("path=" + path)
	}
	return Parse(data)
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the catalog compiled into the binary. It is parsed once and
// shared; callers must treat it as read-only.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(builtinCatalog)
	})
	return builtin, builtinErr
}

// MustBuiltin is Builtin that panics on a corrupt embedded catalog.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(fmt.Sprintf("substance: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load returns the catalog at path, or the built-in catalog when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	return LoadFile(path)
}

//Personal.AI order the ending
