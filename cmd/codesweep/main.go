package main

import (
	"os"

	"github.com/dshills/codesweep/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
