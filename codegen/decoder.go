package codegen

import (
	"github.com/signadot/tony-format/go-codable/schema"
)

type decodeVisitor struct {
	p *printer
}

func (d *decodeVisitor) begin(l *layout) {
	if l.empty() {
		d.p.checkDiscard("%s.KeyedContainer()", decName)
		return
	}
	d.p.printf("%s, err := %s.KeyedContainer()\n", l.root.name, decName)
	d.p.printf("if err != nil {\nreturn err\n}\n")
}

func (d *decodeVisitor) nested(parent, c *container) {
	if !c.direct {
		d.p.checkDiscard("%s.NestedKeyedContainer(%q)", parent.name, c.key)
		return
	}
	d.p.printf("%s, err := %s.NestedKeyedContainer(%q)\n", c.name, parent.name, c.key)
	d.p.printf("if err != nil {\nreturn err\n}\n")
}

func (d *decodeVisitor) field(c *container, f *schema.Field, local string) {
	d.p.printf("var %s %s\n", local, f.Type)
	switch {
	case f.Transform != nil && f.Conditional:
		d.p.check("%s.DecodeTransformedIfPresent(%s, %q, new(%s), &%s)", runtimeName, c.name, f.Key, f.Transform.Name, local)
	case f.Transform != nil:
		d.p.check("%s.DecodeTransformed(%s, %q, new(%s), &%s)", runtimeName, c.name, f.Key, f.Transform.Name, local)
	case f.Conditional:
		d.p.check("%s.DecodeIfPresent(%q, &%s)", c.name, f.Key, local)
	default:
		d.p.check("%s.Decode(%q, &%s)", c.name, f.Key, local)
	}
}

func (d *decodeVisitor) end(l *layout) {
	writeAssign(d.p, l.typeName, l.fields, l.locals)
	d.p.printf("return nil\n")
}

// writeAssign emits the composite literal replacing the receiver.
func writeAssign(p *printer, typeName string, fields []*schema.Field, locals map[*schema.Field]string) {
	if len(fields) == 0 {
		p.printf("*%s = %s{}\n", recvName, typeName)
		return
	}
	p.printf("*%s = %s{\n", recvName, typeName)
	for _, f := range fields {
		p.printf("%s: %s,\n", f.LocalName, locals[f])
	}
	p.printf("}\n")
}

// writeKeyedDecoder emits the decode method of a keyed schema.
func writeKeyedDecoder(p *printer, l *layout, acc schema.Access) {
	p.printf("func (%s *%s) %s(%s *%s.Decoder) error {\n", recvName, l.typeName, decodeMethod(acc), decName, runtimeName)
	walk(l, &decodeVisitor{p: p})
	p.printf("}\n\n")
}

// writeSingleValueDecoder emits the decode method of a single value schema.
func writeSingleValueDecoder(p *printer, s *schema.Schema, acc schema.Access) {
	f := s.Fields[0]
	local := newScope(s).declare(f.LocalName)
	p.printf("func (%s *%s) %s(%s *%s.Decoder) error {\n", recvName, s.TypeName, decodeMethod(acc), decName, runtimeName)
	p.printf("%s, err := %s.SingleValueContainer()\n", rootName, decName)
	p.printf("if err != nil {\nreturn err\n}\n")
	p.printf("var %s %s\n", local, f.Type)
	p.check("%s.Decode(&%s)", rootName, local)
	writeAssign(p, s.TypeName, s.Fields, map[*schema.Field]string{f: local})
	p.printf("return nil\n")
	p.printf("}\n\n")
}
