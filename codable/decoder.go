package codable

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/goccy/go-json"
)

// Decodable is implemented by types with a generated public DecodeFrom.
// Types generated with internal access are found through Register instead.
type Decodable interface {
	DecodeFrom(dec *Decoder) error
}

// Decoder reads one value of the intermediate tree.
type Decoder struct {
	path  codingPath
	value any
}

// NewDecoder returns a decoder over tree at the root coding path.
func NewDecoder(tree any) *Decoder {
	return &Decoder{value: tree}
}

// CodingPath returns the dotted path of keys leading to this decoder.
func (d *Decoder) CodingPath() string {
	return d.path.String()
}

// KeyedContainer returns the value as a keyed container.
func (d *Decoder) KeyedContainer() (*KeyedDecodingContainer, error) {
	m, ok := asMap(d.value)
	if !ok {
		return nil, &DecodingError{
			Kind:    TypeMismatch,
			Path:    d.path.String(),
			Message: fmt.Sprintf("expected a keyed container, found %s", describe(d.value)),
		}
	}
	return &KeyedDecodingContainer{path: d.path, m: m}, nil
}

// SingleValueContainer returns the value as a single value container.
func (d *Decoder) SingleValueContainer() (*SingleValueDecodingContainer, error) {
	return &SingleValueDecodingContainer{dec: d}, nil
}

// KeyedDecodingContainer reads values by key.
type KeyedDecodingContainer struct {
	path codingPath
	m    map[string]any
}

// CodingPath returns the dotted path of this container.
func (c *KeyedDecodingContainer) CodingPath() string {
	return c.path.String()
}

// Contains reports whether key is present, even with a null value.
func (c *KeyedDecodingContainer) Contains(key string) bool {
	_, ok := c.m[key]
	return ok
}

// Keys returns the keys of the container, sorted.
func (c *KeyedDecodingContainer) Keys() []string {
	keys := make([]string, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Decode reads the value under key into dst, which must be a non-nil
// pointer. A missing key is a KeyNotFound error; a null value is a
// ValueNotFound error unless dst points to a pointer, slice, map or
// interface.
func (c *KeyedDecodingContainer) Decode(key string, dst any) error {
	raw, ok := c.m[key]
	if !ok {
		return &DecodingError{
			Kind:    KeyNotFound,
			Path:    c.path.child(key).String(),
			Message: fmt.Sprintf("no value associated with key %q", key),
		}
	}
	return decodeValue(c.path.child(key), raw, dst, true)
}

// DecodeIfPresent reads the value under key into dst if the key is
// present and not null. Otherwise dst is left untouched.
func (c *KeyedDecodingContainer) DecodeIfPresent(key string, dst any) error {
	if !c.present(key) {
		return nil
	}
	return decodeValue(c.path.child(key), c.m[key], dst, false)
}

func (c *KeyedDecodingContainer) present(key string) bool {
	raw, ok := c.m[key]
	return ok && raw != nil
}

// NestedKeyedContainer returns the keyed container stored under key.
func (c *KeyedDecodingContainer) NestedKeyedContainer(key string) (*KeyedDecodingContainer, error) {
	raw, ok := c.m[key]
	if !ok {
		return nil, &DecodingError{
			Kind:    KeyNotFound,
			Path:    c.path.child(key).String(),
			Message: fmt.Sprintf("no nested container associated with key %q", key),
		}
	}
	return (&Decoder{path: c.path.child(key), value: raw}).KeyedContainer()
}

// SingleValueDecodingContainer reads one value.
type SingleValueDecodingContainer struct {
	dec *Decoder
}

// CodingPath returns the dotted path of this container.
func (c *SingleValueDecodingContainer) CodingPath() string {
	return c.dec.path.String()
}

// Decode reads the value into dst.
func (c *SingleValueDecodingContainer) Decode(dst any) error {
	return decodeValue(c.dec.path, c.dec.value, dst, true)
}

// DecodeNil reports whether the value is null.
func (c *SingleValueDecodingContainer) DecodeNil() bool {
	return c.dec.value == nil
}

// DataCorrupted returns a DataCorrupted error at this container.
func (c *SingleValueDecodingContainer) DataCorrupted(msg string) error {
	return &DecodingError{Kind: DataCorrupted, Path: c.dec.path.String(), Message: msg}
}

// DataCorruptedf is DataCorrupted with a formatted message.
func (c *SingleValueDecodingContainer) DataCorruptedf(format string, args ...any) error {
	return c.DataCorrupted(fmt.Sprintf(format, args...))
}

// DecodeValue decodes an intermediate tree into dst.
func DecodeValue(tree any, dst any) error {
	return decodeValue(nil, tree, dst, true)
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	}
	return false
}

func decodeValue(path codingPath, raw any, dst any, required bool) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &DecodingError{
			Kind:    TypeMismatch,
			Path:    path.String(),
			Message: fmt.Sprintf("decode target must be a non-nil pointer, got %T", dst),
		}
	}
	elem := rv.Elem()
	if raw == nil {
		if required && !nillable(elem.Kind()) {
			return &DecodingError{
				Kind:    ValueNotFound,
				Path:    path.String(),
				Message: fmt.Sprintf("expected %s but found null", elem.Type()),
			}
		}
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}
	if d, ok := dst.(Decodable); ok {
		return d.DecodeFrom(&Decoder{path: path, value: raw})
	}
	if r, ok := lookup(elem.Type()); ok && rv.Type().Name() == "" {
		return r.decode(dst, &Decoder{path: path, value: raw})
	}
	switch elem.Kind() {
	case reflect.Pointer:
		nv := reflect.New(elem.Type().Elem())
		if err := decodeValue(path, raw, nv.Interface(), required); err != nil {
			return err
		}
		elem.Set(nv)
		return nil
	case reflect.Interface:
		if elem.NumMethod() == 0 {
			elem.Set(reflect.ValueOf(Plain(raw)))
			return nil
		}
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok || elem.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		s := reflect.MakeSlice(elem.Type(), len(items), len(items))
		for i := range items {
			if err := decodeValue(path.child(fmt.Sprint(i)), items[i], s.Index(i).Addr().Interface(), false); err != nil {
				return err
			}
		}
		elem.Set(s)
		return nil
	case reflect.Array:
		items, ok := raw.([]any)
		if !ok || elem.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		if len(items) != elem.Len() {
			return &DecodingError{
				Kind:    TypeMismatch,
				Path:    path.String(),
				Message: fmt.Sprintf("expected %d elements for %s, found %d", elem.Len(), elem.Type(), len(items)),
			}
		}
		a := reflect.New(elem.Type()).Elem()
		for i := range items {
			if err := decodeValue(path.child(fmt.Sprint(i)), items[i], a.Index(i).Addr().Interface(), false); err != nil {
				return err
			}
		}
		elem.Set(a)
		return nil
	case reflect.Map:
		m, ok := asMap(raw)
		if !ok || elem.Type().Key().Kind() != reflect.String {
			break
		}
		mv := reflect.MakeMapWithSize(elem.Type(), len(m))
		for k, v := range m {
			ev := reflect.New(elem.Type().Elem())
			if err := decodeValue(path.child(k), v, ev.Interface(), false); err != nil {
				return err
			}
			mv.SetMapIndex(reflect.ValueOf(k).Convert(elem.Type().Key()), ev.Elem())
		}
		elem.Set(mv)
		return nil
	}
	return decodeLeaf(path, raw, dst)
}

// decodeLeaf converts raw into dst through its JSON form, which lets
// scalar conversions and json.Unmarshaler implementations apply
// regardless of the format the tree came from.
func decodeLeaf(path codingPath, raw any, dst any) error {
	data, err := json.Marshal(normalize(raw))
	if err != nil {
		return &DecodingError{
			Kind:    DataCorrupted,
			Path:    path.String(),
			Message: fmt.Sprintf("cannot represent %s", describe(raw)),
			Err:     err,
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &DecodingError{
			Kind:    TypeMismatch,
			Path:    path.String(),
			Message: fmt.Sprintf("cannot decode %s into %s", describe(raw), reflect.TypeOf(dst).Elem()),
			Err:     err,
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case *Object:
		return x.values, true
	case map[string]any:
		return x, true
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, val := range x {
			res[fmt.Sprint(k)] = val
		}
		return res, true
	}
	return nil, false
}

// normalize makes a tree marshalable as JSON.
func normalize(v any) any {
	switch x := v.(type) {
	case *Object:
		return x
	case map[any]any:
		m, _ := asMap(x)
		return normalize(m)
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, val := range x {
			res[k] = normalize(val)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = normalize(x[i])
		}
		return res
	}
	return v
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object, map[string]any, map[any]any:
		return "a keyed container"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("a %T", v)
}
