package main

import (
	"os"

	"github.com/astrokit/seqedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
