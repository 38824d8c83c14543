// Package codegen emits Go encode and decode methods for coding schemas.
//
// The generated methods target the codable runtime. A keyed schema with a
// group produces, for the encoding half:
//
//	func (v *T) EncodeTo(enc *codable.Encoder) error {
//		c := enc.KeyedContainer()
//		g := c.NestedKeyedContainer("g")
//		if err := g.Encode("a", v.A); err != nil {
//			return err
//		}
//		...
//	}
//
// The decoding half opens the same containers in the same order, reads
// every field into a typed local and assigns the value with a single
// composite literal. Encoder and decoder are driven by one walk over the
// schema so the two stay symmetric.
package codegen
