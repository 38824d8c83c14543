package commands

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

type genConfig struct {
	*cli.Command
	Dir       string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive bool   `cli:"name=recursive aliases=r desc='scan subdirectories recursively'"`
	Schema    string `cli:"name=schema desc='generate from a YAML declaration file instead of Go source'"`
	Pkg       string `cli:"name=pkg desc='package name of the generated file (default: from -schema)'"`
	Output    string `cli:"name=o desc='output file, - for stdout (default: <package>_codable.go)'"`
	Verbose   bool   `cli:"name=v desc='log debug output'"`
}

func (cfg *genConfig) input() *input {
	return &input{dir: cfg.Dir, recursive: cfg.Recursive, schema: cfg.Schema, pkg: cfg.Pkg, output: cfg.Output}
}

// GenCommand returns the gen subcommand.
func GenCommand() *cli.Command {
	cfg := &genConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "gen").
		WithAliases("g").
		WithSynopsis("gen [-dir d] [-recursive] [-schema file.yaml [-pkg name]] [-o file]").
		WithDescription("generate encode/decode methods for codable types").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *genConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	log := newLogger(os.Stderr, cfg.Verbose)
	ts, err := targets(cfg.input(), log)
	if err != nil {
		return err
	}
	for _, t := range ts {
		code, err := t.generate(log)
		if err != nil {
			return err
		}
		if t.output == "-" {
			if _, err := cc.Out.Write(code); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(t.output, code, 0644); err != nil {
			return fmt.Errorf("failed to write %q: %w", t.output, err)
		}
		log.Info("wrote", "file", t.output, "types", len(t.decls))
	}
	return nil
}
