package codable

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Encodable is implemented by types with a generated public EncodeTo.
type Encodable interface {
	EncodeTo(enc *Encoder) error
}

// Encoder receives the encoded form of one value.
type Encoder struct {
	path  codingPath
	value any
	set   bool
}

// NewEncoder returns an encoder at the root coding path.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// CodingPath returns the dotted path of keys leading to this encoder.
func (e *Encoder) CodingPath() string {
	return e.path.String()
}

// Value returns the encoded tree.
func (e *Encoder) Value() any {
	return e.value
}

// KeyedContainer returns the keyed container of this encoder, creating it
// on first use.
func (e *Encoder) KeyedContainer() *KeyedEncodingContainer {
	obj, ok := e.value.(*Object)
	if !ok {
		obj = NewObject()
		e.value = obj
		e.set = true
	}
	return &KeyedEncodingContainer{path: e.path, obj: obj}
}

// SingleValueContainer returns a container holding exactly one value.
func (e *Encoder) SingleValueContainer() *SingleValueEncodingContainer {
	return &SingleValueEncodingContainer{enc: e}
}

// KeyedEncodingContainer writes values under keys.
type KeyedEncodingContainer struct {
	path codingPath
	obj  *Object
}

// CodingPath returns the dotted path of this container.
func (c *KeyedEncodingContainer) CodingPath() string {
	return c.path.String()
}

// Encode writes v under key.
func (c *KeyedEncodingContainer) Encode(key string, v any) error {
	val, err := encodeValue(c.path.child(key), v)
	if err != nil {
		return err
	}
	c.obj.Set(key, val)
	return nil
}

// EncodeIfPresent writes v under key unless v is a nil pointer, slice,
// map or interface, in which case key is omitted entirely.
func (c *KeyedEncodingContainer) EncodeIfPresent(key string, v any) error {
	if isNil(v) {
		return nil
	}
	return c.Encode(key, v)
}

// NestedKeyedContainer returns a keyed container stored under key.
func (c *KeyedEncodingContainer) NestedKeyedContainer(key string) *KeyedEncodingContainer {
	if v, ok := c.obj.Get(key); ok {
		if obj, ok := v.(*Object); ok {
			return &KeyedEncodingContainer{path: c.path.child(key), obj: obj}
		}
	}
	obj := NewObject()
	c.obj.Set(key, obj)
	return &KeyedEncodingContainer{path: c.path.child(key), obj: obj}
}

// SingleValueEncodingContainer writes one value.
type SingleValueEncodingContainer struct {
	enc *Encoder
}

// Encode sets the value.
func (c *SingleValueEncodingContainer) Encode(v any) error {
	val, err := encodeValue(c.enc.path, v)
	if err != nil {
		return err
	}
	c.enc.value = val
	c.enc.set = true
	return nil
}

// EncodeNil sets the value to null.
func (c *SingleValueEncodingContainer) EncodeNil() error {
	c.enc.value = nil
	c.enc.set = true
	return nil
}

// EncodeValue encodes v into an intermediate tree.
func EncodeValue(v any) (any, error) {
	return encodeValue(nil, v)
}

var (
	encodableType = reflect.TypeFor[Encodable]()
	bytesType     = reflect.TypeFor[[]byte]()
)

// encoderFor returns the generated encode method of v, either its
// exported EncodeTo or the registered one.
func encoderFor(v any) (func(*Encoder) error, bool) {
	if e, ok := v.(Encodable); ok {
		return e.EncodeTo, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		r, ok := lookup(rv.Type().Elem())
		if !ok || rv.Type().Name() != "" {
			return nil, false
		}
		return func(enc *Encoder) error { return r.encode(v, enc) }, true
	}
	r, ok := lookup(rv.Type())
	if !ok && !reflect.PointerTo(rv.Type()).Implements(encodableType) {
		return nil, false
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	if ok {
		ptr := p.Interface()
		return func(enc *Encoder) error { return r.encode(ptr, enc) }, true
	}
	return p.Interface().(Encodable).EncodeTo, true
}

func encodeValue(path codingPath, v any) (any, error) {
	if isNil(v) {
		return nil, nil
	}
	if encode, ok := encoderFor(v); ok {
		sub := &Encoder{path: path}
		if err := encode(sub); err != nil {
			return nil, err
		}
		if !sub.set {
			return nil, &EncodingError{
				Path:    path.String(),
				Message: fmt.Sprintf("%T did not encode any value", v),
			}
		}
		return sub.value, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return encodeValue(path, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Type() == bytesType || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		res := make([]any, rv.Len())
		for i := range res {
			val, err := encodeValue(path.child(fmt.Sprint(i)), rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			res[i] = val
		}
		return res, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}
		obj := NewObject()
		for _, k := range sortedKeys(rv) {
			val, err := encodeValue(path.child(k.String()), rv.MapIndex(k).Interface())
			if err != nil {
				return nil, err
			}
			obj.Set(k.String(), val)
		}
		return obj, nil
	}
	return v, nil
}

func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
