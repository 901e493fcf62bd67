// Command relgen compiles a relation schema into a typed Go data-access
// package.
//
//	relgen generate schema.yaml --target ./model --package example.com/app/model
//	relgen inspect schema.yaml
package main

import (
	"os"

	"github.com/syssam/relgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
