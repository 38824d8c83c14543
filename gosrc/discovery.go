package gosrc

import (
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedSuffix is the file name suffix of generated files. Files with
// this suffix are not read back as input.
const GeneratedSuffix = "_codable.go"

// PackageInfo describes a discovered Go package.
type PackageInfo struct {
	Path  string
	Dir   string
	Name  string
	Files []string
}

// OutputFile returns the default path of the generated file for p.
func (p *PackageInfo) OutputFile() string {
	return filepath.Join(p.Dir, p.Name+GeneratedSuffix)
}

// DiscoverPackages discovers Go packages in the given directory.
// If recursive is true, it scans subdirectories recursively.
func DiscoverPackages(dir string, recursive bool) ([]*PackageInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}

	var packages []*PackageInfo
	visited := make(map[string]bool)

	err = filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != absDir {
			base := filepath.Base(path)
			if !recursive || skipDir(base) {
				return filepath.SkipDir
			}
		}

		pkg, err := build.ImportDir(path, 0)
		if err != nil {
			// not a Go package
			return nil
		}
		if visited[pkg.Dir] {
			return nil
		}
		visited[pkg.Dir] = true

		files := make([]string, 0, len(pkg.GoFiles))
		for _, f := range pkg.GoFiles {
			if strings.HasSuffix(f, GeneratedSuffix) {
				continue
			}
			files = append(files, filepath.Join(path, f))
		}
		if len(files) == 0 {
			return nil
		}

		packages = append(packages, &PackageInfo{
			Path:  pkg.ImportPath,
			Dir:   path,
			Name:  pkg.Name,
			Files: files,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}
	return packages, nil
}

func skipDir(base string) bool {
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") ||
		base == "vendor" || base == "testdata"
}
