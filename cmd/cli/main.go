// powerjson - power-device report converter
//
// powerjson converts the human-readable output of power-device inspection
// utilities (upower, upsc) into structured JSON or YAML records.
package main

import (
	"os"

	"github.com/powerjson/powerjson/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
