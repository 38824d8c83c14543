package codable

import (
	"fmt"
	"reflect"
	"sync"
)

// registration holds the unexported generated methods of one type, taking
// a *T as any.
type registration struct {
	encode func(p any, enc *Encoder) error
	decode func(p any, dec *Decoder) error
}

var (
	mu         sync.RWMutex
	registered = map[reflect.Type]*registration{}
)

// Register makes the generated methods of T reachable by Marshal,
// Unmarshal and nested containers when they are not exported as
// Encodable and Decodable. Code generated with internal access calls it
// from init:
//
//	codable.Register((*Person).encodeTo, (*Person).decodeFrom)
//
// Registering a type twice panics.
func Register[T any](encode func(*T, *Encoder) error, decode func(*T, *Decoder) error) {
	t := reflect.TypeFor[T]()
	mu.Lock()
	defer mu.Unlock()
	if _, present := registered[t]; present {
		panic(fmt.Sprintf("codable: %s registered twice", t))
	}
	registered[t] = &registration{
		encode: func(p any, enc *Encoder) error { return encode(p.(*T), enc) },
		decode: func(p any, dec *Decoder) error { return decode(p.(*T), dec) },
	}
}

func lookup(t reflect.Type) (*registration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registered[t]
	return r, ok
}
