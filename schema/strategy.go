package schema

import "fmt"

// Container selects the top level container shape of a type.
type Container int

const (
	// Keyed codes the type as a keyed container over its schema.
	Keyed Container = iota
	// SingleValue codes the type as the single value of one bound field.
	SingleValue
	// SingleValueForEnum codes an enum as the raw string of its case.
	SingleValueForEnum
)

var containerNames = [...]string{
	Keyed:              "keyed",
	SingleValue:        "singleValue",
	SingleValueForEnum: "singleValueForEnum",
}

func (c Container) String() string {
	if c < 0 || int(c) >= len(containerNames) {
		return fmt.Sprintf("Container(%d)", int(c))
	}
	return containerNames[c]
}

// Strategy is the container selection for one generation pass.
type Strategy struct {
	Container Container

	// Binding is the field wrapped by a SingleValue strategy.
	Binding string
}

// RequiresCodingKeys reports whether the strategy needs a coding key
// enumeration in the declaration.
func (s Strategy) RequiresCodingKeys() bool {
	return s.Container != SingleValue
}

func (s Strategy) String() string {
	if s.Container == SingleValue {
		return fmt.Sprintf("singleValue(%s)", s.Binding)
	}
	return s.Container.String()
}

// Access is the visibility of the generated methods.
type Access int

const (
	Internal Access = iota
	Public
)

func (a Access) String() string {
	switch a {
	case Internal:
		return "internal"
	case Public:
		return "public"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}
