package main

import (
	"os"

	"github.com/spektr-org/fomezero/cli"
)

func main() {
	os.Exit(cli.Execute())
}
