package codegen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/tony-format/go-codable/schema"
)

// Identifiers used by every generated method.
const (
	recvName    = "v"
	encName     = "enc"
	decName     = "dec"
	errName     = "err"
	runtimeName = "codable"
	rootName    = "c"
	rawName     = "raw"
)

var predeclared = []string{
	"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
	"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune",
	"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"true", "false", "iota", "nil",
	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
	"len", "make", "max", "min", "new", "panic", "print", "println", "real",
	"recover",
}

// scope allocates unique identifiers within one generated method.
type scope map[string]bool

func newScope(s *schema.Schema) scope {
	sc := scope{}
	for _, n := range predeclared {
		sc[n] = true
	}
	for _, n := range []string{recvName, encName, decName, errName, runtimeName, rootName, rawName} {
		sc[n] = true
	}
	sc[s.TypeName] = true
	for _, f := range s.Flatten() {
		for _, id := range identifiers(f.Type) {
			sc[id] = true
		}
		if f.Transform != nil {
			for _, id := range identifiers(f.Transform.Name) {
				sc[id] = true
			}
		}
	}
	return sc
}

// declare returns a fresh identifier derived from name.
func (sc scope) declare(name string) string {
	id := localName(name)
	for sc[id] || token.IsKeyword(id) {
		id += "_"
	}
	sc[id] = true
	return id
}

// localName lowers the leading initialism or letter of a field name:
// FirstName -> firstName, ID -> id, URLPath -> urlPath.
func localName(name string) string {
	if name == "" {
		return "_"
	}
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return name
	case n > 1 && n < len(runes) && unicode.IsLower(runes[n]):
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// identifiers returns the identifiers appearing in a type expression.
func identifiers(expr string) []string {
	var res []string
	start := -1
	for i := 0; i <= len(expr); {
		r, size := utf8.RuneError, 1
		if i < len(expr) {
			r, size = utf8.DecodeRuneInString(expr[i:])
		}
		isID := i < len(expr) && (r == '_' || unicode.IsLetter(r) || (start >= 0 && unicode.IsDigit(r)))
		switch {
		case isID && start < 0:
			start = i
		case !isID && start >= 0:
			res = append(res, expr[start:i])
			start = -1
		}
		i += size
	}
	return res
}

// qualifiers returns the package names qualifying identifiers in a type
// expression, e.g. "time" for "map[string]*time.Time".
func qualifiers(expr string) []string {
	var res []string
	parts := strings.Split(expr, ".")
	for _, part := range parts[:len(parts)-1] {
		ids := identifiers(part)
		if len(ids) == 0 {
			continue
		}
		last := ids[len(ids)-1]
		if strings.HasSuffix(part, last) {
			res = append(res, last)
		}
	}
	return res
}
