package main

import (
	"os"

	"github.com/ariel-frischer/tagnotes/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
