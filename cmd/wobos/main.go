// Command wobos drives the offshore wind balance-of-system engine.
package main

import (
	"os"

	"github.com/roach88/wobos/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
