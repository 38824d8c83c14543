package codable

// Transform is implemented by value transform adapters. The adapter is
// constructed from the logical value on encode (FromValue) and converted
// back on decode (Value). The adapter itself is what gets coded.
type Transform[T any] interface {
	FromValue(v T)
	Value() T
}

// EncodeTransformed writes v under key through the adapter a.
func EncodeTransformed[T any](c *KeyedEncodingContainer, key string, a Transform[T], v T) error {
	a.FromValue(v)
	return c.Encode(key, a)
}

// EncodeTransformedIfPresent is EncodeTransformed for conditional fields:
// a nil v omits key.
func EncodeTransformedIfPresent[T any](c *KeyedEncodingContainer, key string, a Transform[T], v *T) error {
	if v == nil {
		return nil
	}
	return EncodeTransformed(c, key, a, *v)
}

// DecodeTransformed reads the adapter a under key and stores its value in
// dst.
func DecodeTransformed[T any](c *KeyedDecodingContainer, key string, a Transform[T], dst *T) error {
	if err := c.Decode(key, a); err != nil {
		return err
	}
	*dst = a.Value()
	return nil
}

// DecodeTransformedIfPresent is DecodeTransformed for conditional fields:
// when key is absent or null dst is left untouched.
func DecodeTransformedIfPresent[T any](c *KeyedDecodingContainer, key string, a Transform[T], dst **T) error {
	if !c.present(key) {
		return nil
	}
	if err := c.Decode(key, a); err != nil {
		return err
	}
	v := a.Value()
	*dst = &v
	return nil
}
