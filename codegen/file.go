package codegen

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"

	"golang.org/x/tools/imports"

	"github.com/signadot/tony-format/go-codable/decl"
	"github.com/signadot/tony-format/go-codable/extract"
	"github.com/signadot/tony-format/go-codable/schema"
)

// RuntimeImport is the import path of the runtime package used by
// generated code.
const RuntimeImport = "github.com/signadot/tony-format/go-codable/codable"

// Header is the first line of every generated file.
const Header = "// Code generated by codable-gen. DO NOT EDIT."

// Unit is one type to generate methods for.
type Unit struct {
	Schema  *schema.Schema
	Options Options
	// Imports maps package names used in field types to import paths.
	Imports map[string]string
}

// NewUnit parses the options of d and extracts its schema.
func NewUnit(d *decl.Declaration) (*Unit, error) {
	opts, err := ParseOptions(d.Options)
	if err != nil {
		if d.Pos != "" {
			return nil, fmt.Errorf("%s: %s: %w", d.Pos, d.TypeName, err)
		}
		return nil, fmt.Errorf("%s: %w", d.TypeName, err)
	}
	s, err := extract.Extract(d, opts.Strategy)
	if err != nil {
		return nil, err
	}
	return &Unit{Schema: s, Options: opts, Imports: d.Imports}, nil
}

// Config configures file generation.
type Config struct {
	// Log receives debug output. Nil discards it.
	Log *slog.Logger
}

func (c *Config) log() *slog.Logger {
	if c == nil || c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

// GenerateFile generates a formatted Go file of package pkg holding the
// methods of every unit, in order.
func GenerateFile(pkg string, units []*Unit) ([]byte, error) {
	return (*Config)(nil).GenerateFile(pkg, units)
}

// GenerateFile generates a formatted Go file of package pkg holding the
// methods of every unit, in order.
func (c *Config) GenerateFile(pkg string, units []*Unit) ([]byte, error) {
	log := c.log()
	imps, err := c.fileImports(units)
	if err != nil {
		return nil, err
	}

	p := &printer{}
	p.printf("%s\n\npackage %s\n\n", Header, pkg)
	p.printf("import (\n")
	for _, imp := range imps {
		if imp.name != path.Base(imp.path) {
			p.printf("%s %q\n", imp.name, imp.path)
			continue
		}
		p.printf("%q\n", imp.path)
	}
	p.printf(")\n\n")

	var internal []string
	for _, u := range units {
		log.Debug("generate", "type", u.Schema.TypeName, "container", u.Options.Strategy, "access", u.Options.Access)
		if err := writeUnit(&p.buf, u); err != nil {
			return nil, err
		}
		if u.Options.Access == schema.Internal {
			internal = append(internal, u.Schema.TypeName)
		}
	}
	writeRegistrations(&p.buf, internal)

	out, err := imports.Process(pkg+"_codable.go", p.bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code for package %s: %w", pkg, err)
	}
	return out, nil
}

func writeUnit(w io.Writer, u *Unit) error {
	g, err := Select(u.Options.Strategy)
	if err != nil {
		return fmt.Errorf("%s: %w", u.Schema.TypeName, err)
	}
	if err := g.Generate(w, u.Schema, u.Options.Access); err != nil {
		return err
	}
	if u.Options.Access == schema.Public {
		writeJSONBridge(w, u.Schema.TypeName)
	}
	return nil
}

// writeJSONBridge emits encoding/json methods delegating to the runtime.
func writeJSONBridge(w io.Writer, typeName string) {
	fmt.Fprintf(w, "// MarshalJSON encodes v as JSON with EncodeTo.\n")
	fmt.Fprintf(w, "func (%s %s) MarshalJSON() ([]byte, error) {\n", recvName, typeName)
	fmt.Fprintf(w, "return %s.Marshal(%s.JSON, &%s)\n", runtimeName, runtimeName, recvName)
	fmt.Fprintf(w, "}\n\n")
	fmt.Fprintf(w, "// UnmarshalJSON decodes JSON data into v with DecodeFrom.\n")
	fmt.Fprintf(w, "func (%s *%s) UnmarshalJSON(data []byte) error {\n", recvName, typeName)
	fmt.Fprintf(w, "return %s.Unmarshal(%s.JSON, data, %s)\n", runtimeName, runtimeName, recvName)
	fmt.Fprintf(w, "}\n\n")
}

// writeRegistrations emits an init function registering the unexported
// methods of typeNames with the runtime.
func writeRegistrations(w io.Writer, typeNames []string) {
	if len(typeNames) == 0 {
		return
	}
	fmt.Fprintf(w, "func init() {\n")
	for _, name := range typeNames {
		fmt.Fprintf(w, "%s.Register((*%s).%s, (*%s).%s)\n", runtimeName, name, encodeMethod(schema.Internal), name, decodeMethod(schema.Internal))
	}
	fmt.Fprintf(w, "}\n")
}

type fileImport struct {
	name string
	path string
}

// fileImports resolves the packages referenced by the generated code.
func (c *Config) fileImports(units []*Unit) ([]fileImport, error) {
	byName := map[string]string{runtimeName: RuntimeImport}
	add := func(u *Unit, name, importPath string) error {
		if importPath == "" {
			importPath = u.Imports[name]
		}
		if importPath == "" {
			c.log().Debug("unresolved package, assuming import path", "type", u.Schema.TypeName, "package", name)
			importPath = name
		}
		if prev, ok := byName[name]; ok && prev != importPath {
			return fmt.Errorf("%s: package name %s refers to both %q and %q", u.Schema.TypeName, name, prev, importPath)
		}
		byName[name] = importPath
		return nil
	}
	for _, u := range units {
		for _, f := range u.Schema.Flatten() {
			for _, q := range qualifiers(f.Type) {
				if err := add(u, q, ""); err != nil {
					return nil, err
				}
			}
		}
		for _, t := range u.Schema.Transforms() {
			for _, q := range qualifiers(t.Name) {
				if err := add(u, q, t.ImportPath); err != nil {
					return nil, err
				}
			}
		}
	}
	res := make([]fileImport, 0, len(byName))
	for name, p := range byName {
		res = append(res, fileImport{name: name, path: p})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].path != res[j].path {
			return res[i].path < res[j].path
		}
		return res[i].name < res[j].name
	})
	return res, nil
}
