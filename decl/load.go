package decl

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// File is the YAML form of a set of declarations:
//
//	package: models
//	declarations:
//	- type: Person
//	  augments: true
//	  options: {access: public}
//	  members:
//	  - {name: FirstName, type: string}
//	  enums:
//	  - name: CodingKeys
//	    tags: [CodingKey]
//	    cases:
//	    - {name: FirstName, raw: first_name}
type File struct {
	Package      string         `yaml:"package"`
	Declarations []*Declaration `yaml:"declarations"`
}

// LoadFile reads declarations from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	f, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	for i, d := range f.Declarations {
		d.Pos = fmt.Sprintf("%s:declarations[%d]", path, i)
	}
	return f, nil
}

// Load reads declarations in YAML form from r.
func Load(r io.Reader) (*File, error) {
	f := &File{}
	if err := yaml.NewDecoder(r).Decode(f); err != nil {
		return nil, err
	}
	if f.Package == "" {
		return nil, fmt.Errorf("missing package name")
	}
	for i, d := range f.Declarations {
		if d.TypeName == "" {
			return nil, fmt.Errorf("declaration %d: missing type name", i)
		}
		for _, e := range d.Enums {
			for _, c := range e.Cases {
				c.HasRawValue = c.RawValue != ""
				if c.Type == "" {
					if m := d.Member(c.Name); m != nil {
						c.Type = m.Type
					}
				}
			}
		}
	}
	return f, nil
}
