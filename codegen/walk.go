package codegen

import "github.com/signadot/tony-format/go-codable/schema"

// container is a keyed container variable of a generated method.
type container struct {
	name   string
	key    string
	schema *schema.Schema
	// direct is set when the container holds a non-grouping field.
	direct bool
}

// layout assigns containers and locals to the fields of a keyed schema.
// Encoder and decoder share one layout so both use the same names.
type layout struct {
	typeName string
	root     *container
	nested   []*container
	groups   map[*schema.Field]*container
	locals   map[*schema.Field]string
	fields   []*schema.Field
}

func newLayout(s *schema.Schema) *layout {
	sc := newScope(s)
	l := &layout{
		typeName: s.TypeName,
		root:     &container{name: rootName, schema: s},
		groups:   map[*schema.Field]*container{},
		locals:   map[*schema.Field]string{},
		fields:   s.Flatten(),
	}
	for _, f := range s.Fields {
		if f.Group == nil {
			l.root.direct = true
			continue
		}
		c := &container{name: sc.declare(f.LocalName), key: f.Key, schema: f.Group}
		for _, gf := range f.Group.Fields {
			if gf.Group == nil {
				c.direct = true
			}
		}
		l.groups[f] = c
		l.nested = append(l.nested, c)
	}
	for _, f := range l.fields {
		l.locals[f] = sc.declare(f.LocalName)
	}
	return l
}

// empty reports whether the root container is never referenced.
func (l *layout) empty() bool {
	return len(l.root.schema.Fields) == 0
}

// visitor receives the structure of a keyed method in order: begin, every
// nested container, every field with the container that holds it, end.
type visitor interface {
	begin(l *layout)
	nested(parent, c *container)
	field(c *container, f *schema.Field, local string)
	end(l *layout)
}

// walk drives vis over l. Nested containers are all opened before the
// first field.
func walk(l *layout, vis visitor) {
	vis.begin(l)
	for _, c := range l.nested {
		vis.nested(l.root, c)
	}
	walkFields(l, l.root, vis)
	vis.end(l)
}

func walkFields(l *layout, c *container, vis visitor) {
	for _, f := range c.schema.Fields {
		if f.Group != nil {
			walkFields(l, l.groups[f], vis)
			continue
		}
		vis.field(c, f, l.locals[f])
	}
}
