package commands

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/go-codable/codable"
)

var discard = slog.New(slog.DiscardHandler)

const modelsSource = `package models

//codable:container=keyed,access=public
type Person struct {
	FirstName string  ` + "`codable:\"first_name\"`" + `
	LastName  *string ` + "`codable:\"last_name,conditional\"`" + `
}

//codable:container=singleValueForEnum
type Kind string

const (
	Regular Kind = "user_regular"
	Premium Kind = "user_premium"
)
`

const modelsYAML = `package: models
declarations:
- type: Person
  augments: true
  options: {access: public}
  members:
  - {name: FirstName, type: string}
  - {name: LastName, type: "*string"}
  enums:
  - name: CodingKeys
    tags: [CodingKey]
    cases:
    - {name: FirstName, raw: first_name}
    - name: LastName
      raw: last_name
      markers:
      - {name: conditional}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTargetsFromSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models.go"), modelsSource)
	writeFile(t, filepath.Join(root, "plain", "plain.go"), "package plain\n\ntype T struct{}\n")

	ts, err := targets(&input{dir: root, recursive: true}, discard)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if len(ts) != 1 {
		t.Fatalf("expected 1 target, got %d", len(ts))
	}
	if ts[0].pkg != "models" || ts[0].output != filepath.Join(root, "models_codable.go") {
		t.Errorf("unexpected target %+v", ts[0])
	}
	code, err := ts[0].generate(discard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, w := range []string{
		"package models",
		"func (v *Person) EncodeTo(enc *codable.Encoder) error {",
		`c.EncodeIfPresent("last_name", v.LastName)`,
		"func (v *Kind) EncodeTo(enc *codable.Encoder) error {",
		`case "user_premium":`,
	} {
		if !strings.Contains(string(code), w) {
			t.Errorf("Expected %q in generated code:\n%s", w, code)
		}
	}
}

func TestTargetsFromSchema(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "models.yaml")
	writeFile(t, path, modelsYAML)

	ts, err := targets(&input{schema: path}, discard)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if len(ts) != 1 || ts[0].pkg != "models" || ts[0].output != filepath.Join(root, "models_codable.go") {
		t.Fatalf("unexpected targets %+v", ts)
	}

	ts, err = targets(&input{schema: path, pkg: "people", output: "out.go"}, discard)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	if ts[0].pkg != "people" || ts[0].output != "out.go" {
		t.Errorf("unexpected target %+v", ts[0])
	}
	code, err := ts[0].generate(discard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(code), "package people") {
		t.Errorf("expected package people:\n%s", code)
	}
}

func TestTargetsUsage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "a.go"), modelsSource)
	writeFile(t, filepath.Join(root, "b", "b.go"), strings.Replace(modelsSource, "package models", "package other", 1))

	tests := []struct {
		name string
		in   *input
	}{
		{name: "pkg without schema", in: &input{dir: root, pkg: "x"}},
		{name: "output with many packages", in: &input{dir: root, recursive: true, output: "x.go"}},
		{name: "schema with dir", in: &input{dir: root, schema: "x.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := targets(tt.in, discard)
			if !errors.Is(err, cli.ErrUsage) {
				t.Errorf("expected usage error, got %v", err)
			}
		})
	}
}

func TestUnitsReportsAllErrors(t *testing.T) {
	root := t.TempDir()
	src := "package p\n\n//codable:container=bogus\ntype A struct{}\n\n//codable:access=secret\ntype B struct{}\n"
	writeFile(t, filepath.Join(root, "p.go"), src)
	ts, err := targets(&input{dir: root}, discard)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	_, err = ts[0].units()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, w := range []string{"A: unknown container", "B: unknown access"} {
		if !strings.Contains(err.Error(), w) {
			t.Errorf("expected %q in %q", w, err.Error())
		}
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models.go"), modelsSource)
	ts, err := targets(&input{dir: root}, discard)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}

	out := &bytes.Buffer{}
	stale, err := check(out, ts, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if stale != 1 {
		t.Errorf("expected a missing file to be stale, got %d", stale)
	}
	if !strings.Contains(out.String(), "+// Code generated by codable-gen. DO NOT EDIT.") {
		t.Errorf("expected an insertion diff, got:\n%s", out)
	}

	code, err := ts[0].generate(discard)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, ts[0].output, string(code))
	out.Reset()
	stale, err = check(out, ts, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if stale != 0 || out.Len() != 0 {
		t.Errorf("expected up to date output, got %d stale:\n%s", stale, out)
	}

	writeFile(t, ts[0].output, strings.Replace(string(code), "first_name", "firstName", 1))
	out.Reset()
	stale, err = check(out, ts, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if stale != 1 || !strings.Contains(out.String(), `-	if err := c.Encode("firstName", v.FirstName); err != nil {`) {
		t.Errorf("expected a diff for the edited file, got %d stale:\n%s", stale, out)
	}
}

func TestDump(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "models.yaml")
	writeFile(t, path, modelsYAML)
	ts, err := targets(&input{schema: path}, discard)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   []string
	}{
		{format: "", want: []string{"package: models", "type: Person", "container: keyed", "access: public", "key: first_name", "conditional: true"}},
		{format: "json", want: []string{`"package": "models"`, `"container": "keyed"`, `"key": "last_name"`, `"conditional": true`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := dump(out, ts, tt.format); err != nil {
				t.Fatalf("dump: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("Expected %q in:\n%s", w, out)
				}
			}
		})
	}

	out := &bytes.Buffer{}
	if err := dump(out, ts, "cbor"); err != nil {
		t.Fatalf("dump: %v", err)
	}
	tree, err := codable.CBOR.Unmarshal(out.Bytes())
	if err != nil {
		t.Fatalf("dump wrote invalid cbor: %v", err)
	}
	pkgs, ok := tree.([]any)
	if !ok || len(pkgs) != 1 {
		t.Fatalf("expected one package, got %#v", tree)
	}
	if pkg, ok := pkgs[0].(map[string]any); !ok || pkg["package"] != "models" {
		t.Errorf("unexpected package entry %#v", pkgs[0])
	}

	if err := dump(&bytes.Buffer{}, ts, "toml"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error for unknown format, got %v", err)
	}
}

func TestUseColor(t *testing.T) {
	out := &bytes.Buffer{}
	tests := []struct {
		name        string
		force, none bool
		want        bool
	}{
		{name: "default off for buffers"},
		{name: "forced", force: true, want: true},
		{name: "disabled", none: true},
		{name: "disabled wins", force: true, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := useColor(tt.force, tt.none, out); got != tt.want {
				t.Errorf("useColor(%v, %v) = %v, want %v", tt.force, tt.none, got, tt.want)
			}
		})
	}
}
