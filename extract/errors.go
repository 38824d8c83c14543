package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCodingKeys is returned when the strategy requires a coding
	// key enumeration and the declaration has none.
	ErrMissingCodingKeys = errors.New("missing coding keys")

	// ErrAmbiguousCodingKeys is returned when several coding key
	// enumerations could be the root and none is named CodingKeys.
	ErrAmbiguousCodingKeys = errors.New("ambiguous coding keys")

	// ErrOnlyApplicableToExtension is returned when the declaration does
	// not augment an existing type.
	ErrOnlyApplicableToExtension = errors.New("only applicable to an extension of an existing type")

	ErrDuplicateKey   = errors.New("duplicate key")
	ErrInvalidMarker  = errors.New("invalid marker")
	ErrUnknownGroup   = errors.New("unknown group")
	ErrDuplicateGroup = errors.New("duplicate group")
	ErrNestedGroup    = errors.New("groups cannot be nested")
	ErrUnknownBinding = errors.New("unknown binding")
	ErrMissingType    = errors.New("missing type")
)

// Error is a schema error for one declaration.
type Error struct {
	TypeName string
	Pos      string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.TypeName, msg)
	}
	return fmt.Sprintf("%s: %s", e.TypeName, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}
