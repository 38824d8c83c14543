// Package extract turns a raw declaration into a coding schema.
//
// Extract is a pure function: it reads a decl.Declaration, validates it
// against the selected container strategy and returns a schema.Schema or a
// *Error wrapping one of the sentinel errors of this package.
package extract

import (
	"fmt"
	"strings"

	"github.com/signadot/tony-format/go-codable/decl"
	"github.com/signadot/tony-format/go-codable/schema"
)

// Extract builds the schema of d for strategy s.
func Extract(d *decl.Declaration, s schema.Strategy) (*schema.Schema, error) {
	x := &extractor{d: d, strategy: s}
	res, err := x.extract()
	if err != nil {
		return nil, x.wrap(err)
	}
	return res, nil
}

type extractor struct {
	d        *decl.Declaration
	strategy schema.Strategy
	// enums referenced by a group marker
	grouped map[string]bool
}

type fault struct {
	err error
	msg string
}

func (f *fault) Error() string { return f.msg }

func failf(err error, format string, args ...any) error {
	return &fault{err: err, msg: fmt.Sprintf(format, args...)}
}

func (x *extractor) wrap(err error) error {
	e := &Error{TypeName: x.d.TypeName, Pos: x.d.Pos, Err: err}
	if f, ok := err.(*fault); ok {
		e.Err = f.err
		e.Message = f.msg
	}
	return e
}

func (x *extractor) extract() (*schema.Schema, error) {
	if !x.d.Augments {
		return nil, ErrOnlyApplicableToExtension
	}
	x.grouped = x.groupReferences()
	if x.strategy.Container == schema.SingleValue {
		return x.singleValue()
	}
	keys, err := x.rootEnum()
	if err != nil {
		return nil, err
	}
	res, err := x.schemaOf(keys, 0)
	if err != nil {
		return nil, err
	}
	if x.strategy.Container == schema.SingleValueForEnum {
		if err := checkEnumCases(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// groupReferences collects the names of enumerations referenced by group
// markers anywhere in the declaration.
func (x *extractor) groupReferences() map[string]bool {
	res := map[string]bool{}
	for _, e := range x.d.Enums {
		for _, c := range e.Cases {
			if m, ok := c.Marker(decl.MarkerGroup); ok && m.Arg != "" {
				res[m.Arg] = true
			}
		}
	}
	return res
}

// RootEnumName is the name of the root coding key enumeration when a
// declaration has more than one candidate.
const RootEnumName = "CodingKeys"

// rootEnum returns the coding key enumeration that is not the target of a
// group marker. The one named RootEnumName wins over other candidates;
// without it, more than one candidate is an error.
func (x *extractor) rootEnum() (*decl.Enum, error) {
	var candidates []*decl.Enum
	for _, e := range x.d.Enums {
		if !e.HasTag(decl.CodingKey) || x.grouped[e.Name] {
			continue
		}
		if e.Name == RootEnumName {
			return e, nil
		}
		candidates = append(candidates, e)
	}
	switch len(candidates) {
	case 0:
		return nil, ErrMissingCodingKeys
	case 1:
		return candidates[0], nil
	}
	names := make([]string, len(candidates))
	for i, e := range candidates {
		names[i] = e.Name
	}
	return nil, failf(ErrAmbiguousCodingKeys, "%s are all candidates, name one %s", strings.Join(names, ", "), RootEnumName)
}

func (x *extractor) singleValue() (*schema.Schema, error) {
	binding := x.strategy.Binding
	if binding == "" {
		return nil, failf(ErrUnknownBinding, "single value container requires a binding")
	}
	m := x.d.Member(binding)
	if m == nil {
		return nil, failf(ErrUnknownBinding, "%s has no member %q", x.d.TypeName, binding)
	}
	if m.Type == "" {
		return nil, failf(ErrMissingType, "member %q", binding)
	}
	return &schema.Schema{
		Name:     x.d.TypeName,
		TypeName: x.d.TypeName,
		Fields:   []*schema.Field{{Key: m.Name, LocalName: m.Name, Type: m.Type}},
	}, nil
}

func (x *extractor) schemaOf(e *decl.Enum, depth int) (*schema.Schema, error) {
	res := &schema.Schema{Name: e.Name, TypeName: x.d.TypeName}
	keys := map[string]string{}
	for _, c := range e.Cases {
		f, err := x.field(e, c, depth)
		if err != nil {
			return nil, err
		}
		if other, dup := keys[f.Key]; dup {
			return nil, failf(ErrDuplicateKey, "%q used by %s and %s in %s", f.Key, other, c.Name, e.Name)
		}
		keys[f.Key] = c.Name
		res.Fields = append(res.Fields, f)
	}
	return res, nil
}

func (x *extractor) field(e *decl.Enum, c *decl.Case, depth int) (*schema.Field, error) {
	f := &schema.Field{
		Key:       c.Name,
		LocalName: c.Name,
		Type:      c.Type,
	}
	if c.HasRawValue {
		f.Key = c.RawValue
	}
	seen := map[string]bool{}
	for _, m := range c.Markers {
		if seen[m.Name] {
			return nil, failf(ErrInvalidMarker, "%s.%s: repeated marker %q", e.Name, c.Name, m.Name)
		}
		seen[m.Name] = true
		switch m.Name {
		case decl.MarkerConditional:
			f.Conditional = true
		case decl.MarkerTransform:
			if m.Arg == "" {
				return nil, failf(ErrInvalidMarker, "%s.%s: transform requires a type argument", e.Name, c.Name)
			}
			f.Transform = x.transformRef(m.Arg)
		case decl.MarkerGroup:
			g, err := x.group(e, c, m.Arg, depth)
			if err != nil {
				return nil, err
			}
			f.Group = g
		default:
			return nil, failf(ErrInvalidMarker, "%s.%s: unknown marker %q", e.Name, c.Name, m.Name)
		}
	}
	if f.Group != nil {
		if f.Conditional || f.Transform != nil {
			return nil, failf(ErrInvalidMarker, "%s.%s: grouping field cannot be conditional or transformed", e.Name, c.Name)
		}
		return f, nil
	}
	if f.Type == "" && x.strategy.Container == schema.Keyed {
		return nil, failf(ErrMissingType, "%s.%s", e.Name, c.Name)
	}
	// A conditional transformed value is passed as a *T, so the member
	// must be a pointer. Other conditional members of non-nillable types
	// are always present.
	if f.Conditional && f.Transform != nil && !strings.HasPrefix(f.Type, "*") {
		return nil, failf(ErrInvalidMarker, "%s.%s: conditional transformed member must be a pointer, not %s", e.Name, c.Name, f.Type)
	}
	return f, nil
}

func (x *extractor) group(parent *decl.Enum, c *decl.Case, name string, depth int) (*schema.Schema, error) {
	if name == "" {
		return nil, failf(ErrInvalidMarker, "%s.%s: group requires an enumeration name", parent.Name, c.Name)
	}
	if depth > 0 {
		return nil, failf(ErrNestedGroup, "%s.%s references %s inside group %s", parent.Name, c.Name, name, parent.Name)
	}
	e := x.d.Enum(name)
	if e == nil {
		return nil, failf(ErrUnknownGroup, "%s.%s: no enumeration named %s", parent.Name, c.Name, name)
	}
	if !e.HasTag(decl.CodingKey) {
		return nil, failf(ErrUnknownGroup, "%s.%s: enumeration %s is not tagged %s", parent.Name, c.Name, name, decl.CodingKey)
	}
	if x.grouped[name] && x.used(name) {
		return nil, failf(ErrDuplicateGroup, "%s referenced more than once", name)
	}
	return x.schemaOf(e, depth+1)
}

// used reports whether enumeration name is referenced by more than one
// group marker.
func (x *extractor) used(name string) bool {
	n := 0
	for _, e := range x.d.Enums {
		for _, c := range e.Cases {
			if m, ok := c.Marker(decl.MarkerGroup); ok && m.Arg == name {
				n++
			}
		}
	}
	return n > 1
}

// transformRef resolves a type expression like "pkg.Type" against the
// declaration imports.
func (x *extractor) transformRef(expr string) *schema.TransformRef {
	ref := &schema.TransformRef{Name: expr}
	for i := 0; i < len(expr); i++ {
		if expr[i] != '.' {
			continue
		}
		pkg := expr[:i]
		if len(pkg) > 0 && pkg[0] == '*' {
			pkg = pkg[1:]
		}
		ref.ImportPath = x.d.Imports[pkg]
		break
	}
	return ref
}

func checkEnumCases(s *schema.Schema) error {
	for _, f := range s.Fields {
		if f.Conditional || f.Transform != nil || f.Group != nil {
			return failf(ErrInvalidMarker, "enum case %s cannot carry markers", f.LocalName)
		}
	}
	return nil
}
