// Package gosrc reads codable declarations from Go source.
//
// A type opts in with a doc comment directive:
//
//	//codable:container=keyed,access=public
//	type Person struct {
//		FirstName string  `codable:"first_name"`
//		LastName  *string `codable:"last_name,conditional"`
//		Street    string  `codable:"street,group=address"`
//		City      string  `codable:"city,group=address"`
//		cache     []byte
//	}
//
// Exported fields are coded under their field name unless the tag gives a
// key. Unexported fields are coded only when tagged, and `codable:"-"`
// skips a field. Grouped fields are coded in a nested container named by
// the group.
//
// Enumerations use the singleValueForEnum container. Each const of the
// type declared in the same file becomes a case, keyed by a
// //codable:key= comment, its string literal value, or its name.
package gosrc
