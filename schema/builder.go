package schema

// FieldOption configures a field added through a Builder.
type FieldOption func(*Field)

// Conditional marks a field as conditional.
func Conditional() FieldOption {
	return func(f *Field) { f.Conditional = true }
}

// WithTransform routes a field through the named adapter type.
func WithTransform(name, importPath string) FieldOption {
	return func(f *Field) {
		f.Transform = &TransformRef{Name: name, ImportPath: importPath}
	}
}

// Builder assembles a Schema directly, without going through a raw
// declaration. It performs no validation; use extract for checked input.
type Builder struct {
	s *Schema
}

// NewBuilder starts a root schema for the given type.
func NewBuilder(typeName string) *Builder {
	return &Builder{s: &Schema{Name: "CodingKeys", TypeName: typeName}}
}

// Field appends a field.
func (b *Builder) Field(key, localName, typ string, opts ...FieldOption) *Builder {
	f := &Field{Key: key, LocalName: localName, Type: typ}
	for _, opt := range opts {
		opt(f)
	}
	b.s.Fields = append(b.s.Fields, f)
	return b
}

// Group appends a grouping field keyed by key whose nested schema is
// populated by fn.
func (b *Builder) Group(key, localName string, fn func(*Builder)) *Builder {
	child := &Builder{s: &Schema{Name: localName, TypeName: b.s.TypeName}}
	fn(child)
	b.s.Fields = append(b.s.Fields, &Field{Key: key, LocalName: localName, Group: child.s})
	return b
}

// Build returns the schema.
func (b *Builder) Build() *Schema {
	return b.s
}
