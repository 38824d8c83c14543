package commands

import (
	"github.com/scott-cotton/cli"
)

const usageText = `codable-gen - generate encode/decode methods for Go types

Types opt in with a directive comment and optional field tags:

  //codable:container=keyed,access=public
  type Person struct {
          FirstName string  ` + "`" + `codable:"first_name"` + "`" + `
          LastName  *string ` + "`" + `codable:"last_name,conditional"` + "`" + `
  }

Containers: keyed (default), singleValue(Field), singleValueForEnum.
Access: internal (default, encodeTo/decodeFrom), public (EncodeTo/DecodeFrom
and JSON methods).

Usage:
  codable-gen gen [-dir d] [-recursive] [-o file]   Write <pkg>_codable.go files
  codable-gen gen -schema types.yaml [-pkg name]    Generate from a YAML schema
  codable-gen check [-dir d] [-recursive]           Fail if generated files are stale
  codable-gen dump [-format yaml|json]              Print extracted schemas`

// Root returns the root command for codable-gen.
func Root() *cli.Command {
	return cli.NewCommand("codable-gen").
		WithSynopsis("codable-gen command [opts]").
		WithDescription(usageText).
		WithSubs(
			GenCommand(),
			CheckCommand(),
			DumpCommand(),
		)
}
