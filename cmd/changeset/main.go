package main

import (
	"os"

	"github.com/raveheart1/changeset/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
