package main

import (
	"os"

	"github.com/thedocproject/thedoc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
