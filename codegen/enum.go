package codegen

import (
	"github.com/signadot/tony-format/go-codable/schema"
)

// writeEnumEncoder emits an encode method writing the key of the
// receiver's case. Cases are compared in schema order so that aliases
// sharing a value encode as the first of them.
func writeEnumEncoder(p *printer, s *schema.Schema, acc schema.Access) {
	p.printf("func (%s *%s) %s(%s *%s.Encoder) error {\n", recvName, s.TypeName, encodeMethod(acc), encName, runtimeName)
	if len(s.Fields) > 0 {
		p.printf("%s := %s.SingleValueContainer()\n", rootName, encName)
		for _, f := range s.Fields {
			p.printf("if *%s == %s {\n", recvName, f.LocalName)
			p.printf("return %s.Encode(%q)\n", rootName, f.Key)
			p.printf("}\n")
		}
	}
	p.printf("return %s.InvalidValue(%s, %q, *%s)\n", runtimeName, encName, s.TypeName, recvName)
	p.printf("}\n\n")
}

// writeEnumDecoder emits a decode method matching a string against the
// case keys in schema order.
func writeEnumDecoder(p *printer, s *schema.Schema, acc schema.Access) {
	p.printf("func (%s *%s) %s(%s *%s.Decoder) error {\n", recvName, s.TypeName, decodeMethod(acc), decName, runtimeName)
	p.printf("%s, err := %s.SingleValueContainer()\n", rootName, decName)
	p.printf("if err != nil {\nreturn err\n}\n")
	p.printf("var %s string\n", rawName)
	p.check("%s.Decode(&%s)", rootName, rawName)
	p.printf("switch %s {\n", rawName)
	for _, f := range s.Fields {
		p.printf("case %q:\n", f.Key)
		p.printf("*%s = %s\n", recvName, f.LocalName)
	}
	p.printf("default:\n")
	p.printf("return %s.DataCorruptedf(%q, %s)\n", rootName, "cannot initialize "+s.TypeName+" from invalid string value %q", rawName)
	p.printf("}\n")
	p.printf("return nil\n")
	p.printf("}\n\n")
}
