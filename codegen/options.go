package codegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/signadot/tony-format/go-codable/schema"
)

// Option keys.
const (
	OptionContainer = "container"
	OptionAccess    = "access"
)

var (
	ErrUnknownContainer = errors.New("unknown container")
	ErrUnknownAccess    = errors.New("unknown access")
	ErrUnknownOption    = errors.New("unknown option")
)

// Options configures the generation of one type.
type Options struct {
	Strategy schema.Strategy
	Access   schema.Access
}

// ParseOptions reads the container strategy and access level from opts.
// Missing options default to a keyed container with internal access.
func ParseOptions(opts map[string]string) (Options, error) {
	res := Options{Strategy: schema.Strategy{Container: schema.Keyed}}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := opts[k]
		switch k {
		case OptionContainer:
			s, err := ParseContainer(v)
			if err != nil {
				return Options{}, err
			}
			res.Strategy = s
		case OptionAccess:
			a, err := ParseAccess(v)
			if err != nil {
				return Options{}, err
			}
			res.Access = a
		default:
			return Options{}, fmt.Errorf("%w %q", ErrUnknownOption, k)
		}
	}
	return res, nil
}

// ParseContainer parses a container option value:
//
//	keyed
//	singleValue(Binding)
//	singleValueForEnum
func ParseContainer(v string) (schema.Strategy, error) {
	switch v {
	case "", "keyed":
		return schema.Strategy{Container: schema.Keyed}, nil
	case "singleValueForEnum":
		return schema.Strategy{Container: schema.SingleValueForEnum}, nil
	}
	if arg, ok := strings.CutPrefix(v, "singleValue("); ok {
		binding, ok := strings.CutSuffix(arg, ")")
		binding = strings.TrimSpace(binding)
		if !ok || binding == "" {
			return schema.Strategy{}, fmt.Errorf("%w %q: singleValue requires a binding", ErrUnknownContainer, v)
		}
		return schema.Strategy{Container: schema.SingleValue, Binding: binding}, nil
	}
	return schema.Strategy{}, fmt.Errorf("%w %q", ErrUnknownContainer, v)
}

// ParseAccess parses an access option value.
func ParseAccess(v string) (schema.Access, error) {
	switch v {
	case "", "internal":
		return schema.Internal, nil
	case "public":
		return schema.Public, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownAccess, v)
}
