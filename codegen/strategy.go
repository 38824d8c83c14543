package codegen

import (
	"fmt"
	"io"

	"github.com/signadot/tony-format/go-codable/schema"
)

// Generator emits the encode and decode methods of one schema.
type Generator interface {
	Generate(w io.Writer, s *schema.Schema, acc schema.Access) error
}

// Select returns the generator for a container strategy.
func Select(s schema.Strategy) (Generator, error) {
	switch s.Container {
	case schema.Keyed:
		return keyedGenerator{}, nil
	case schema.SingleValue:
		if s.Binding == "" {
			return nil, fmt.Errorf("%w %q: singleValue requires a binding", ErrUnknownContainer, s)
		}
		return singleValueGenerator{binding: s.Binding}, nil
	case schema.SingleValueForEnum:
		return enumGenerator{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownContainer, s)
}

type keyedGenerator struct{}

func (keyedGenerator) Generate(w io.Writer, s *schema.Schema, acc schema.Access) error {
	if d := s.Depth(); d > 1 {
		return fmt.Errorf("%s: groups nested %d levels deep", s.TypeName, d)
	}
	l := newLayout(s)
	p := &printer{}
	writeKeyedEncoder(p, l, acc)
	writeKeyedDecoder(p, l, acc)
	_, err := w.Write(p.bytes())
	return err
}

type singleValueGenerator struct {
	binding string
}

func (g singleValueGenerator) Generate(w io.Writer, s *schema.Schema, acc schema.Access) error {
	if len(s.Fields) != 1 || s.Fields[0].LocalName != g.binding {
		return fmt.Errorf("%s: single value schema must hold exactly the bound field %s", s.TypeName, g.binding)
	}
	p := &printer{}
	writeSingleValueEncoder(p, s, acc)
	writeSingleValueDecoder(p, s, acc)
	_, err := w.Write(p.bytes())
	return err
}

type enumGenerator struct{}

func (enumGenerator) Generate(w io.Writer, s *schema.Schema, acc schema.Access) error {
	p := &printer{}
	writeEnumEncoder(p, s, acc)
	writeEnumDecoder(p, s, acc)
	_, err := w.Write(p.bytes())
	return err
}

func encodeMethod(acc schema.Access) string {
	if acc == schema.Public {
		return "EncodeTo"
	}
	return "encodeTo"
}

func decodeMethod(acc schema.Access) string {
	if acc == schema.Public {
		return "DecodeFrom"
	}
	return "decodeFrom"
}
