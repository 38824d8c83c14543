package schema

import (
	"fmt"
	"strings"
)

// Schema is the ordered description of the fields of one coding level.
// The root schema of a type describes its top level container; a group
// schema describes the nested container opened under its grouping field.
type Schema struct {
	// Name is the name of the coding key enumeration this schema was
	// extracted from (e.g. "CodingKeys" or the name of a group).
	Name string `json:"name" yaml:"name"`

	// TypeName is the Go type the schema belongs to.
	TypeName string `json:"type" yaml:"type"`

	// Fields are the fields of this level in declaration order.
	Fields []*Field `json:"fields" yaml:"fields"`
}

// Field is one entry of a schema.
type Field struct {
	// Key is the name of the field in the external representation.
	Key string `json:"key" yaml:"key"`

	// LocalName is the Go identifier bound to the field (a struct field
	// name or, for enums, a const name).
	LocalName string `json:"localName" yaml:"localName"`

	// Type is the Go type expression of the logical value.
	Type string `json:"goType,omitempty" yaml:"goType,omitempty"`

	// Conditional fields are omitted when absent on encode and left
	// absent when missing on decode.
	Conditional bool `json:"conditional,omitempty" yaml:"conditional,omitempty"`

	// Transform, when set, names the adapter type the value goes through.
	Transform *TransformRef `json:"transform,omitempty" yaml:"transform,omitempty"`

	// Group, when set, makes this a grouping field: it is never coded
	// itself, its key opens a nested container holding Group's fields.
	Group *Schema `json:"group,omitempty" yaml:"group,omitempty"`
}

// TransformRef references a value transform adapter type.
type TransformRef struct {
	// Name is the type expression as it appears in generated code, for
	// example "UnixTime" or "isotime.Adapter".
	Name string `json:"name" yaml:"name"`

	// ImportPath is the import path of the package defining the type,
	// empty for types local to the generated package.
	ImportPath string `json:"importPath,omitempty" yaml:"importPath,omitempty"`
}

// IsGroup reports whether f is a grouping field.
func (f *Field) IsGroup() bool {
	return f.Group != nil
}

func (f *Field) String() string {
	var attrs []string
	if f.Conditional {
		attrs = append(attrs, "conditional")
	}
	if f.Transform != nil {
		attrs = append(attrs, "transform="+f.Transform.Name)
	}
	if f.Group != nil {
		attrs = append(attrs, "group="+f.Group.Name)
	}
	if len(attrs) == 0 {
		return fmt.Sprintf("%s(%q)", f.LocalName, f.Key)
	}
	return fmt.Sprintf("%s(%q; %s)", f.LocalName, f.Key, strings.Join(attrs, ", "))
}

// Lookup returns the field of this level with the given key.
func (s *Schema) Lookup(key string) *Field {
	for _, f := range s.Fields {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// Groups returns the grouping fields of this level in declaration order.
func (s *Schema) Groups() []*Field {
	var res []*Field
	for _, f := range s.Fields {
		if f.Group != nil {
			res = append(res, f)
		}
	}
	return res
}

// Flatten returns the coded fields of s with every group expanded in
// place at the position of its grouping field. Grouping fields themselves
// do not appear. This is the argument list of the aggregate initializer
// used on decode and the write order used on encode.
func (s *Schema) Flatten() []*Field {
	var res []*Field
	for _, f := range s.Fields {
		if f.Group != nil {
			res = append(res, f.Group.Flatten()...)
			continue
		}
		res = append(res, f)
	}
	return res
}

// Depth returns the number of nested container levels below s.
func (s *Schema) Depth() int {
	depth := 0
	for _, f := range s.Fields {
		if f.Group == nil {
			continue
		}
		if d := f.Group.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Transforms returns the distinct transform references used anywhere in
// s, in first-use order.
func (s *Schema) Transforms() []*TransformRef {
	var res []*TransformRef
	seen := map[TransformRef]bool{}
	for _, f := range s.Flatten() {
		if f.Transform == nil || seen[*f.Transform] {
			continue
		}
		seen[*f.Transform] = true
		res = append(res, f.Transform)
	}
	return res
}

// String renders s as an indented outline, mainly for diagnostics.
func (s *Schema) String() string {
	buf := &strings.Builder{}
	s.outline(buf, "")
	return buf.String()
}

func (s *Schema) outline(buf *strings.Builder, indent string) {
	fmt.Fprintf(buf, "%s%s {\n", indent, s.Name)
	for _, f := range s.Fields {
		if f.Group != nil {
			fmt.Fprintf(buf, "%s  %s:\n", indent, f)
			f.Group.outline(buf, indent+"    ")
			continue
		}
		fmt.Fprintf(buf, "%s  %s\n", indent, f)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}
