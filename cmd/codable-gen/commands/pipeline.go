package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/go-codable/codegen"
	"github.com/signadot/tony-format/go-codable/decl"
	"github.com/signadot/tony-format/go-codable/gosrc"
)

// input selects where declarations come from.
type input struct {
	dir       string
	recursive bool
	schema    string
	pkg       string
	output    string
}

// target is one generated file.
type target struct {
	pkg    string
	output string
	decls  []*decl.Declaration
}

// targets resolves in into generation targets. Packages without
// declarations are skipped.
func targets(in *input, log *slog.Logger) ([]*target, error) {
	if in.schema != "" {
		return schemaTarget(in)
	}
	if in.pkg != "" {
		return nil, fmt.Errorf("%w: -pkg requires -schema", cli.ErrUsage)
	}
	dir := in.dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	packages, err := gosrc.DiscoverPackages(dir, in.recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(packages) == 0 {
		return nil, fmt.Errorf("no Go packages found in %q", dir)
	}
	var res []*target
	for _, pkg := range packages {
		decls, err := gosrc.LoadPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %q: %w", pkg.Dir, err)
		}
		if len(decls) == 0 {
			log.Debug("no codable types", "package", pkg.Name, "dir", pkg.Dir)
			continue
		}
		res = append(res, &target{pkg: pkg.Name, output: pkg.OutputFile(), decls: decls})
	}
	if in.output != "" {
		if len(res) > 1 {
			return nil, fmt.Errorf("%w: -o requires a single package, found %d", cli.ErrUsage, len(res))
		}
		for _, t := range res {
			t.output = in.output
		}
	}
	return res, nil
}

func schemaTarget(in *input) ([]*target, error) {
	if in.recursive || in.dir != "" {
		return nil, fmt.Errorf("%w: -schema cannot be combined with -dir or -recursive", cli.ErrUsage)
	}
	f, err := decl.LoadFile(in.schema)
	if err != nil {
		return nil, err
	}
	pkg := f.Package
	if in.pkg != "" {
		pkg = in.pkg
	}
	output := in.output
	if output == "" {
		output = filepath.Join(filepath.Dir(in.schema), pkg+gosrc.GeneratedSuffix)
	}
	return []*target{{pkg: pkg, output: output, decls: f.Declarations}}, nil
}

// units extracts the schema and options of every declaration of t.
func (t *target) units() ([]*codegen.Unit, error) {
	var errs []error
	units := make([]*codegen.Unit, 0, len(t.decls))
	for _, d := range t.decls {
		u, err := codegen.NewUnit(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		units = append(units, u)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return units, nil
}

// generate returns the generated file of t.
func (t *target) generate(log *slog.Logger) ([]byte, error) {
	units, err := t.units()
	if err != nil {
		return nil, err
	}
	cfg := &codegen.Config{Log: log}
	return cfg.GenerateFile(t.pkg, units)
}
