package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/go-codable/codable"
	"github.com/signadot/tony-format/go-codable/schema"
)

type dumpConfig struct {
	*cli.Command
	Dir       string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive bool   `cli:"name=recursive aliases=r desc='scan subdirectories recursively'"`
	Schema    string `cli:"name=schema desc='read a YAML declaration file instead of Go source'"`
	Format    string `cli:"name=format aliases=f desc='output format: yaml, json, cbor or msgpack (default: yaml)'"`
	Verbose   bool   `cli:"name=v desc='log debug output'"`
}

// DumpCommand returns the dump subcommand.
func DumpCommand() *cli.Command {
	cfg := &dumpConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "dump").
		WithSynopsis("dump [-dir d] [-recursive] [-schema file.yaml] [-format yaml|json|cbor|msgpack]").
		WithDescription("print the coding schemas extracted for each codable type").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// dumpPackage is the dump output for one package.
type dumpPackage struct {
	Package string      `json:"package" yaml:"package"`
	Types   []*dumpType `json:"types" yaml:"types"`
}

type dumpType struct {
	Type      string         `json:"type" yaml:"type"`
	Container string         `json:"container" yaml:"container"`
	Access    string         `json:"access" yaml:"access"`
	Schema    *schema.Schema `json:"schema" yaml:"schema"`
}

func (cfg *dumpConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	log := newLogger(os.Stderr, cfg.Verbose)
	ts, err := targets(&input{dir: cfg.Dir, recursive: cfg.Recursive, schema: cfg.Schema}, log)
	if err != nil {
		return err
	}
	return dump(cc.Out, ts, cfg.Format)
}

func dump(w io.Writer, ts []*target, format string) error {
	var pkgs []*dumpPackage
	for _, t := range ts {
		units, err := t.units()
		if err != nil {
			return err
		}
		p := &dumpPackage{Package: t.pkg}
		for _, u := range units {
			p.Types = append(p.Types, &dumpType{
				Type:      u.Schema.TypeName,
				Container: u.Options.Strategy.String(),
				Access:    u.Options.Access.String(),
				Schema:    u.Schema,
			})
		}
		pkgs = append(pkgs, p)
	}
	if format == "" {
		format = codable.YAML.Name()
	}
	f, err := codable.FormatByName(format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := codable.Marshal(f, pkgs)
	if err != nil {
		return err
	}
	if f == codable.JSON {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		data = buf.Bytes()
	}
	_, err = w.Write(data)
	return err
}
