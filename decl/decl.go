// Package decl describes a type declaration the way the generator reads
// it: a type, the members it stores, and the enumerations nested in it.
// One enumeration tagged CodingKey lists the coded members; its cases may
// carry markers (conditional, transform, group).
//
// Declarations come from a front end, either Go source (package gosrc) or
// a YAML description (Load, LoadFile). They are consumed by the extract
// package.
package decl

// Capability tag marking an enumeration as a coding key enumeration.
const CodingKey = "CodingKey"

// Marker names understood on cases.
const (
	MarkerConditional = "conditional"
	MarkerTransform   = "transform"
	MarkerGroup       = "group"
)

// Declaration is a raw type declaration.
type Declaration struct {
	// TypeName is the name of the declared type.
	TypeName string `yaml:"type"`

	// Augments is true when the declaration adds to an existing type, so
	// methods may be attached to it. Go type aliases do not augment.
	Augments bool `yaml:"augments"`

	// Members are the stored members of the type, in declaration order.
	Members []*Member `yaml:"members,omitempty"`

	// Enums are the enumerations nested in the declaration.
	Enums []*Enum `yaml:"enums,omitempty"`

	// Options is the raw per-type generator configuration.
	Options map[string]string `yaml:"options,omitempty"`

	// Imports maps package names used in type expressions to import paths.
	Imports map[string]string `yaml:"imports,omitempty"`

	// Pos is a human readable source position for diagnostics.
	Pos string `yaml:"-"`
}

// Member is a stored member (struct field) of a declared type.
type Member struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Enum is a nested enumeration.
type Enum struct {
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags,omitempty"`
	Cases []*Case  `yaml:"cases"`
}

// Case is one case of an enumeration.
type Case struct {
	// Name is the declared identifier.
	Name string `yaml:"name"`

	// RawValue overrides the external name when HasRawValue is set.
	RawValue    string `yaml:"raw,omitempty"`
	HasRawValue bool   `yaml:"-"`

	// Type is the Go type of the member the case codes, if known.
	Type string `yaml:"type,omitempty"`

	Markers []Marker `yaml:"markers,omitempty"`
}

// Marker is an attribute attached to a case, with an optional argument.
type Marker struct {
	Name string `yaml:"name"`
	Arg  string `yaml:"arg,omitempty"`
}

// HasTag reports whether e carries the given capability tag.
func (e *Enum) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Marker returns the first marker named name.
func (c *Case) Marker(name string) (Marker, bool) {
	for _, m := range c.Markers {
		if m.Name == name {
			return m, true
		}
	}
	return Marker{}, false
}

// Enum returns the nested enumeration named name.
func (d *Declaration) Enum(name string) *Enum {
	for _, e := range d.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Member returns the member named name.
func (d *Declaration) Member(name string) *Member {
	for _, m := range d.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}
