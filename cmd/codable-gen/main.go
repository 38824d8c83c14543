package main

import (
	"context"

	"github.com/scott-cotton/cli"
	"github.com/signadot/tony-format/go-codable/cmd/codable-gen/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
