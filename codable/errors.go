package codable

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decoding errors.
type ErrorKind int

const (
	// KeyNotFound means a required key is missing from a keyed container.
	KeyNotFound ErrorKind = iota + 1
	// ValueNotFound means a required value is null.
	ValueNotFound
	// TypeMismatch means a value does not have the expected shape.
	TypeMismatch
	// DataCorrupted means a value has the right shape but is invalid.
	DataCorrupted
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrValueNotFound = errors.New("value not found")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrDataCorrupted = errors.New("data corrupted")
	ErrInvalidValue  = errors.New("invalid value")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KeyNotFound:
		return ErrKeyNotFound
	case ValueNotFound:
		return ErrValueNotFound
	case TypeMismatch:
		return ErrTypeMismatch
	case DataCorrupted:
		return ErrDataCorrupted
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodingError is returned by decoders and generated DecodeFrom methods.
type DecodingError struct {
	Kind    ErrorKind
	Path    string // coding path, e.g. "names.first_name"
	Message string
	Err     error
}

func (e *DecodingError) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("decode error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("decode error: %s", msg)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, e.g.
// errors.Is(err, ErrDataCorrupted).
func (e *DecodingError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// EncodingError is returned by encoders and generated EncodeTo methods.
type EncodingError struct {
	Path    string
	Message string
	Err     error
}

func (e *EncodingError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("encode error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("encode error: %s", msg)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// InvalidValue reports a value that has no external representation, such
// as an enum value outside its declared cases.
func InvalidValue(enc *Encoder, typeName string, v any) error {
	return &EncodingError{
		Path:    enc.CodingPath(),
		Message: fmt.Sprintf("%s value %v has no declared case", typeName, v),
		Err:     ErrInvalidValue,
	}
}
