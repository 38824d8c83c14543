package gosrc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/go-codable/decl"
)

// DirectivePrefix introduces a codable directive comment.
const DirectivePrefix = "//codable:"

const (
	tagName     = "codable"
	rootEnum    = "CodingKeys"
	optionEnum  = "container"
	enumOptions = "singleValueForEnum"
)

var (
	// ErrEmbeddedField is returned for a tagged embedded field.
	ErrEmbeddedField = errors.New("embedded fields are not supported")
	// ErrGenericType is returned for a directive on a parameterized type.
	ErrGenericType = errors.New("generic types are not supported")
)

// ParseFile parses a Go source file and returns its AST.
func ParseFile(filename string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %q: %w", filename, err)
	}
	return file, fset, nil
}

// ExtractDeclarations returns a declaration for every type in file carrying
// a //codable: directive, in source order.
func ExtractDeclarations(fset *token.FileSet, file *ast.File) ([]*decl.Declaration, error) {
	imports := ExtractImports(file)
	var res []*decl.Declaration
	for _, d := range file.Decls {
		genDecl, ok := d.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			opts, ok, err := directives(doc)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", fset.Position(typeSpec.Pos()), typeSpec.Name.Name, err)
			}
			if !ok {
				continue
			}
			dcl, err := declaration(file, typeSpec, opts, imports)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", fset.Position(typeSpec.Pos()), typeSpec.Name.Name, err)
			}
			dcl.Pos = fset.Position(typeSpec.Pos()).String()
			res = append(res, dcl)
		}
	}
	return res, nil
}

// ExtractImports extracts imports from an AST file.
// Returns a map of package name -> import path.
func ExtractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}

// directives collects the options of all //codable: lines in a comment
// group. ok reports whether any directive line was present.
func directives(doc *ast.CommentGroup) (opts map[string]string, ok bool, err error) {
	if doc == nil {
		return nil, false, nil
	}
	opts = make(map[string]string)
	for _, c := range doc.List {
		content, found := strings.CutPrefix(c.Text, DirectivePrefix)
		if !found {
			continue
		}
		ok = true
		parsed, err := ParseDirective(content)
		if err != nil {
			return nil, false, err
		}
		for k, v := range parsed {
			opts[k] = v
		}
	}
	return opts, ok, nil
}

func declaration(file *ast.File, spec *ast.TypeSpec, opts map[string]string, imports map[string]string) (*decl.Declaration, error) {
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return nil, ErrGenericType
	}
	d := &decl.Declaration{
		TypeName: spec.Name.Name,
		Augments: !spec.Assign.IsValid(),
		Options:  opts,
		Imports:  imports,
	}
	if opts[optionEnum] == enumOptions {
		cases, err := enumCases(file, spec.Name.Name)
		if err != nil {
			return nil, err
		}
		d.Enums = []*decl.Enum{{Name: rootEnum, Tags: []string{decl.CodingKey}, Cases: cases}}
		return d, nil
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return d, nil
	}
	if err := structKeys(d, st); err != nil {
		return nil, err
	}
	return d, nil
}

// structKeys fills the members and coding key enumerations of d from the
// fields of st.
func structKeys(d *decl.Declaration, st *ast.StructType) error {
	root := &decl.Enum{Name: rootEnum, Tags: []string{decl.CodingKey}}
	groups := make(map[string]*decl.Enum)
	var groupOrder []*decl.Enum
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		tag, hasTag := fieldTag(field)
		if len(field.Names) == 0 {
			if hasTag {
				return fmt.Errorf("%w: %s", ErrEmbeddedField, typ)
			}
			continue
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			d.Members = append(d.Members, &decl.Member{Name: name.Name, Type: typ})
			if !hasTag && !name.IsExported() {
				continue
			}
			ft, err := ParseFieldTag(tag)
			if err != nil {
				return fmt.Errorf("field %s: %w", name.Name, err)
			}
			if ft.Skip {
				continue
			}
			c := &decl.Case{Name: name.Name, Type: typ}
			if ft.Key != "" {
				c.RawValue = ft.Key
				c.HasRawValue = true
			}
			if ft.Conditional {
				c.Markers = append(c.Markers, decl.Marker{Name: decl.MarkerConditional})
			}
			if ft.Transform != "" {
				c.Markers = append(c.Markers, decl.Marker{Name: decl.MarkerTransform, Arg: ft.Transform})
			}
			if ft.Group == "" {
				root.Cases = append(root.Cases, c)
				continue
			}
			g, ok := groups[ft.Group]
			if !ok {
				g = &decl.Enum{Name: ft.Group, Tags: []string{decl.CodingKey}}
				groups[ft.Group] = g
				groupOrder = append(groupOrder, g)
				root.Cases = append(root.Cases, &decl.Case{
					Name:    ft.Group,
					Markers: []decl.Marker{{Name: decl.MarkerGroup, Arg: ft.Group}},
				})
			}
			g.Cases = append(g.Cases, c)
		}
	}
	d.Enums = append([]*decl.Enum{root}, groupOrder...)
	return nil
}

// fieldTag returns the codable tag of a field and whether it was present.
func fieldTag(field *ast.Field) (string, bool) {
	if field.Tag == nil {
		return "", false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(raw).Lookup(tagName)
}

// enumCases collects the consts of type typeName declared in file.
func enumCases(file *ast.File, typeName string) ([]*decl.Case, error) {
	var cases []*decl.Case
	for _, d := range file.Decls {
		genDecl, ok := d.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.CONST {
			continue
		}
		// Within a const block a spec without type or values repeats the
		// previous one.
		current := ""
		for _, spec := range genDecl.Specs {
			vs := spec.(*ast.ValueSpec)
			switch {
			case vs.Type != nil:
				current = types.ExprString(vs.Type)
			case len(vs.Values) > 0:
				current = ""
			}
			if current != typeName {
				continue
			}
			opts, _, err := directives(vs.Doc)
			if err != nil {
				return nil, fmt.Errorf("const %s: %w", vs.Names[0].Name, err)
			}
			lineOpts, _, err := directives(vs.Comment)
			if err != nil {
				return nil, fmt.Errorf("const %s: %w", vs.Names[0].Name, err)
			}
			for k, v := range lineOpts {
				if opts == nil {
					opts = make(map[string]string)
				}
				opts[k] = v
			}
			if _, skip := opts["-"]; skip {
				continue
			}
			for i, name := range vs.Names {
				if name.Name == "_" {
					continue
				}
				c := &decl.Case{Name: name.Name, Type: typeName}
				switch key, ok := opts["key"]; {
				case ok && len(vs.Names) == 1:
					c.RawValue, c.HasRawValue = key, true
				case i < len(vs.Values):
					if lit, ok := vs.Values[i].(*ast.BasicLit); ok && lit.Kind == token.STRING {
						if s, err := strconv.Unquote(lit.Value); err == nil {
							c.RawValue, c.HasRawValue = s, true
						}
					}
				}
				cases = append(cases, c)
			}
		}
	}
	return cases, nil
}
