package codegen

import (
	"github.com/signadot/tony-format/go-codable/schema"
)

type encodeVisitor struct {
	p *printer
}

func (e *encodeVisitor) begin(l *layout) {
	if l.empty() {
		e.p.printf("%s.KeyedContainer()\n", encName)
		return
	}
	e.p.printf("%s := %s.KeyedContainer()\n", l.root.name, encName)
}

func (e *encodeVisitor) nested(parent, c *container) {
	if !c.direct {
		e.p.printf("%s.NestedKeyedContainer(%q)\n", parent.name, c.key)
		return
	}
	e.p.printf("%s := %s.NestedKeyedContainer(%q)\n", c.name, parent.name, c.key)
}

func (e *encodeVisitor) field(c *container, f *schema.Field, _ string) {
	value := recvName + "." + f.LocalName
	switch {
	case f.Transform != nil && f.Conditional:
		e.p.check("%s.EncodeTransformedIfPresent(%s, %q, new(%s), %s)", runtimeName, c.name, f.Key, f.Transform.Name, value)
	case f.Transform != nil:
		e.p.check("%s.EncodeTransformed(%s, %q, new(%s), %s)", runtimeName, c.name, f.Key, f.Transform.Name, value)
	case f.Conditional:
		e.p.check("%s.EncodeIfPresent(%q, %s)", c.name, f.Key, value)
	default:
		e.p.check("%s.Encode(%q, %s)", c.name, f.Key, value)
	}
}

func (e *encodeVisitor) end(*layout) {
	e.p.printf("return nil\n")
}

// writeKeyedEncoder emits the encode method of a keyed schema.
func writeKeyedEncoder(p *printer, l *layout, acc schema.Access) {
	p.printf("func (%s *%s) %s(%s *%s.Encoder) error {\n", recvName, l.typeName, encodeMethod(acc), encName, runtimeName)
	walk(l, &encodeVisitor{p: p})
	p.printf("}\n\n")
}

// writeSingleValueEncoder emits the encode method of a single value
// schema bound to its only field.
func writeSingleValueEncoder(p *printer, s *schema.Schema, acc schema.Access) {
	f := s.Fields[0]
	p.printf("func (%s *%s) %s(%s *%s.Encoder) error {\n", recvName, s.TypeName, encodeMethod(acc), encName, runtimeName)
	p.printf("%s := %s.SingleValueContainer()\n", rootName, encName)
	p.printf("return %s.Encode(%s.%s)\n", rootName, recvName, f.LocalName)
	p.printf("}\n\n")
}
