package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/go-codable/internal/textdiff"
)

type checkConfig struct {
	*cli.Command
	Dir       string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive bool   `cli:"name=recursive aliases=r desc='scan subdirectories recursively'"`
	Schema    string `cli:"name=schema desc='check output of a YAML declaration file'"`
	Pkg       string `cli:"name=pkg desc='package name of the generated file (default: from -schema)'"`
	Output    string `cli:"name=o desc='generated file to compare (default: <package>_codable.go)'"`
	Color     bool   `cli:"name=color desc='color the diff (default: when writing to a terminal)'"`
	NoColor   bool   `cli:"name=no-color desc='never color the diff'"`
	Verbose   bool   `cli:"name=v desc='log debug output'"`
}

func (cfg *checkConfig) input() *input {
	return &input{dir: cfg.Dir, recursive: cfg.Recursive, schema: cfg.Schema, pkg: cfg.Pkg, output: cfg.Output}
}

// CheckCommand returns the check subcommand.
func CheckCommand() *cli.Command {
	cfg := &checkConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check [-dir d] [-recursive] [-schema file.yaml [-pkg name]] [-color|-no-color]").
		WithDescription("report generated files that differ from what gen would write").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
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
	stale, err := check(cc.Out, ts, useColor(cfg.Color, cfg.NoColor, cc.Out))
	if err != nil {
		return err
	}
	if stale > 0 {
		return fmt.Errorf("%d generated file(s) out of date", stale)
	}
	return nil
}

// check writes a diff for every target whose file differs from the
// generated code and returns the number of such targets.
func check(w io.Writer, ts []*target, color bool) (int, error) {
	stale := 0
	for _, t := range ts {
		code, err := t.generate(nil)
		if err != nil {
			return 0, err
		}
		current, err := os.ReadFile(t.output)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("failed to read %q: %w", t.output, err)
		}
		diff := textdiff.Diff(string(current), string(code), textdiff.Options{
			FromName: t.output,
			ToName:   t.output + " (generated)",
			Context:  3,
			Color:    color,
		})
		if diff == "" {
			continue
		}
		stale++
		if _, err := io.WriteString(w, diff); err != nil {
			return 0, err
		}
	}
	return stale, nil
}

// useColor resolves the color flags; without either, color follows
// whether w is a terminal.
func useColor(force, never bool, w io.Writer) bool {
	switch {
	case never:
		return false
	case force:
		return true
	}
	return colorable(w)
}

func colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
