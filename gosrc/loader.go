package gosrc

import "github.com/signadot/tony-format/go-codable/decl"

// LoadPackage parses the files of pkg and returns their declarations in
// file order.
func LoadPackage(pkg *PackageInfo) ([]*decl.Declaration, error) {
	var res []*decl.Declaration
	for _, path := range pkg.Files {
		file, fset, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		decls, err := ExtractDeclarations(fset, file)
		if err != nil {
			return nil, err
		}
		res = append(res, decls...)
	}
	return res, nil
}
