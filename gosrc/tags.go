package gosrc

import (
	"fmt"
	"strings"
)

// ParseDirective parses the content of a //codable: directive into a map.
// It handles key=value pairs and boolean flags separated by commas or
// spaces, and single or double quoted values:
//
//	//codable:container=keyed,access=public
//	//codable:key='user regular'
func ParseDirective(content string) (map[string]string, error) {
	result := make(map[string]string)
	for _, part := range splitTag(content, true) {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid directive: empty key in %q", part)
			}
			result[key] = unquoteValue(value)
			continue
		}
		result[part] = ""
	}
	return result, nil
}

// FieldTag is a parsed `codable:"..."` struct field tag.
type FieldTag struct {
	// Key overrides the external name; empty keeps the field name.
	Key string
	// Skip is set by `codable:"-"`.
	Skip        bool
	Conditional bool
	Transform   string
	Group       string
}

// ParseFieldTag parses the value of a codable struct tag. The first
// element is the key, like encoding/json; the rest are flags and
// key=value options.
func ParseFieldTag(value string) (*FieldTag, error) {
	if value == "-" {
		return &FieldTag{Skip: true}, nil
	}
	parts := splitTag(value, false)
	res := &FieldTag{}
	if len(parts) == 0 {
		return res, nil
	}
	res.Key = unquoteValue(parts[0])
	for _, part := range parts[1:] {
		name, arg, hasArg := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		arg = unquoteValue(strings.TrimSpace(arg))
		switch name {
		case "conditional":
			if hasArg {
				return nil, fmt.Errorf("conditional takes no value in %q", value)
			}
			res.Conditional = true
		case "transform":
			if arg == "" {
				return nil, fmt.Errorf("transform requires a type in %q", value)
			}
			res.Transform = arg
		case "group":
			if arg == "" {
				return nil, fmt.Errorf("group requires a name in %q", value)
			}
			res.Group = arg
		default:
			return nil, fmt.Errorf("unknown option %q in %q", name, value)
		}
	}
	return res, nil
}

// splitTag splits a tag on commas outside quotes, and also on spaces when
// spaces is set. The first element is kept even when empty.
func splitTag(tag string, spaces bool) []string {
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	first := true

	flush := func(force bool) {
		part := strings.TrimSpace(current.String())
		if part != "" || (force && first) {
			parts = append(parts, part)
		}
		first = false
		current.Reset()
	}

	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case char == ',' && !inSingleQuote && !inDoubleQuote:
			flush(!spaces)
		case char == ' ' && spaces && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 {
				flush(false)
			}
		default:
			current.WriteByte(char)
		}
	}
	if current.Len() > 0 || (!spaces && first && tag != "") {
		flush(!spaces)
	}
	return parts
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') ||
			(value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
