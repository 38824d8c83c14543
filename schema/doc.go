// Package schema holds the coding schema of a type: the ordered set of
// fields that appear in its external representation, how those fields are
// grouped into nested containers, and which of them are conditional or go
// through a value transform.
//
// A Schema is produced by the extract package from a raw declaration, or
// assembled directly with a Builder, and is read-only afterwards. The
// codegen package derives both the encoder and the decoder of a type from
// the same Schema.
//
// Example:
//
//	s := schema.NewBuilder("Person").
//		Field("first_name", "FirstName", "string").
//		Group("names", "Names", func(b *schema.Builder) {
//			b.Field("last_name", "LastName", "*string", schema.Conditional())
//		}).
//		Build()
//
// # Related Packages
//
//   - github.com/signadot/tony-format/go-codable/extract - Schema extraction
//   - github.com/signadot/tony-format/go-codable/codegen - Code generation
package schema
