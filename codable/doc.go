// Package codable is the runtime used by code generated with codable-gen.
//
// Generated EncodeTo methods write a value into an Encoder through keyed
// or single value containers; generated DecodeFrom methods read it back
// through the matching Decoder containers. Both work on an intermediate
// tree (objects, arrays and scalars) that a Format turns into bytes:
//
//	data, err := codable.Marshal(codable.JSON, &person)
//	err = codable.Unmarshal(codable.YAML, data, &person)
//
// Keyed containers keep keys in the order they are written, so the output
// of JSON, YAML and MessagePack follows the schema declaration order.
//
// Types generated with internal access have unexported methods; the
// generated file registers them with Register so the runtime finds them
// like Encodable and Decodable values.
//
// # Value transforms
//
// A field may be coded through an adapter type A implementing
// Transform[T] on its pointer. EncodeTransformed and DecodeTransformed are
// the call sites generated for such fields.
package codable
